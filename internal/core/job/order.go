package job

import (
	"github.com/example/talentflow/internal/errs"
)

// Reorder moves the job movedID to rank to (1-based, clamped to [1, N]) and
// renumbers every job densely by position. The input must be ordered by rank;
// it is never mutated.
//
// from == to returns the input unchanged. from is otherwise advisory: the job
// is taken from wherever it currently sits in the slice.
func Reorder(jobs []Job, movedID string, from, to int) ([]Job, error) {
	idx := -1
	for i := range jobs {
		if jobs[i].ID == movedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.NewNotFoundError("job", movedID)
	}

	if from == to || len(jobs) == 1 {
		return jobs, nil
	}

	moved := jobs[idx]
	rest := make([]Job, 0, len(jobs)-1)
	rest = append(rest, jobs[:idx]...)
	rest = append(rest, jobs[idx+1:]...)

	target := clamp(to, 1, len(jobs)) - 1

	out := make([]Job, 0, len(jobs))
	out = append(out, rest[:target]...)
	out = append(out, moved)
	out = append(out, rest[target:]...)

	for i := range out {
		out[i].Order = i + 1
	}
	return out, nil
}

// IsDense reports whether the Order values of jobs are exactly {1..N}.
func IsDense(jobs []Job) bool {
	seen := make([]bool, len(jobs)+1)
	for _, j := range jobs {
		if j.Order < 1 || j.Order > len(jobs) || seen[j.Order] {
			return false
		}
		seen[j.Order] = true
	}
	return true
}

// Renumber rewrites Order to match slice position. Used to repair a
// non-dense ranking after an out-of-band write.
func Renumber(jobs []Job) []Job {
	out := make([]Job, len(jobs))
	copy(out, jobs)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
