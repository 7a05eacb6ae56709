package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind tags the variant held by an Answer.
type AnswerKind int

const (
	KindNone AnswerKind = iota
	KindText
	KindNumber
	KindList
	KindFile
)

func (k AnswerKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindFile:
		return "file"
	}
	return "none"
}

// FileRef describes an uploaded file. Only metadata travels; the content is
// not part of a response.
type FileRef struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Answer is the value given for one question: text, a number, a list of
// strings or a file reference. The zero Answer means no answer.
type Answer struct {
	Kind   AnswerKind
	Text   string
	Number float64
	List   []string
	File   *FileRef
}

func Text(s string) Answer        { return Answer{Kind: KindText, Text: s} }
func Number(f float64) Answer     { return Answer{Kind: KindNumber, Number: f} }
func List(items ...string) Answer { return Answer{Kind: KindList, List: append([]string{}, items...)} }
func File(ref FileRef) Answer     { return Answer{Kind: KindFile, File: &ref} }

// IsEmpty reports whether the answer counts as absent: no answer, the empty
// string, an empty list or a file reference without a name. 0 is an answer.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case KindText:
		return a.Text == ""
	case KindNumber:
		return false
	case KindList:
		return len(a.List) == 0
	case KindFile:
		return a.File == nil || a.File.Name == ""
	}
	return true
}

// Equal reports strict equality: same kind and same value. Lists compare
// element by element.
func (a Answer) Equal(b Answer) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindText:
		return a.Text == b.Text
	case KindNumber:
		return a.Number == b.Number
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if a.List[i] != b.List[i] {
				return false
			}
		}
		return true
	case KindFile:
		if a.File == nil || b.File == nil {
			return a.File == b.File
		}
		return *a.File == *b.File
	}
	return true
}

// Contains reports whether a is a list holding s.
func (a Answer) Contains(s string) bool {
	if a.Kind != KindList {
		return false
	}
	for _, item := range a.List {
		if item == s {
			return true
		}
	}
	return false
}

func (a Answer) String() string {
	switch a.Kind {
	case KindText:
		return a.Text
	case KindNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case KindList:
		return fmt.Sprint(a.List)
	case KindFile:
		if a.File != nil {
			return a.File.Name
		}
	}
	return ""
}

// MarshalJSON encodes the variant as its natural JSON shape; no answer is null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindText:
		return json.Marshal(a.Text)
	case KindNumber:
		return json.Marshal(a.Number)
	case KindList:
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	case KindFile:
		return json.Marshal(a.File)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a string, number, string array, file object or null.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Text(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("list answers must contain only strings: %w", err)
		}
		*a = List(items...)
	case '{':
		var ref FileRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		*a = File(ref)
	case 't', 'f':
		return fmt.Errorf("unsupported answer value %s", data)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("unsupported answer value %s", data)
		}
		*a = Number(f)
	}
	return nil
}
