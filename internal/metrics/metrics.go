// Package metrics holds the prometheus collectors for the API: request
// metrics recorded by Middleware and counters for pipeline events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	talentflow = "talentflow"

	jobsCreatedTotal      = "jobs_created_total"
	jobsReorderedTotal    = "jobs_reordered_total"
	stageTransitionsTotal = "candidate_stage_transitions_total"
	timelineEntriesTotal  = "candidate_timeline_entries_total"
	assessmentsSavedTotal = "assessments_saved_total"
	submissionsTotal      = "assessment_submissions_total"
	chaosInjectedTotal    = "chaos_failures_injected_total"

	// Labels
	stageLabel = "stage"
	kindLabel  = "kind"
	stateLabel = "state"
)

var jobsCreatedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      jobsCreatedTotal,
		Help:      "number of jobs created",
	},
)

var jobsReorderedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      jobsReorderedTotal,
		Help:      "number of reorders that moved a job",
	},
)

var stageTransitionsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      stageTransitionsTotal,
		Help:      "number of candidate stage changes partitioned by the new stage",
	},
	[]string{stageLabel},
)

var timelineEntriesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      timelineEntriesTotal,
		Help:      "number of timeline entries appended partitioned by kind",
	},
	[]string{kindLabel},
)

var assessmentsSavedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      assessmentsSavedTotal,
		Help:      "number of assessment definitions saved",
	},
)

var submissionsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      submissionsTotal,
		Help:      "number of assessment submissions partitioned by outcome",
	},
	[]string{stateLabel},
)

var chaosInjectedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      chaosInjectedTotal,
		Help:      "number of synthetic failures returned by the chaos layer",
	},
)

// Collectors returns the pipeline collectors for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		jobsCreatedMetric,
		jobsReorderedMetric,
		stageTransitionsMetric,
		timelineEntriesMetric,
		assessmentsSavedMetric,
		submissionsMetric,
		chaosInjectedMetric,
	}
}

func IncreaseJobsCreated() {
	jobsCreatedMetric.Inc()
}

func IncreaseJobsReordered() {
	jobsReorderedMetric.Inc()
}

func IncreaseStageTransitions(stage string) {
	stageTransitionsMetric.With(prometheus.Labels{stageLabel: stage}).Inc()
}

func IncreaseTimelineEntries(kind string) {
	timelineEntriesMetric.With(prometheus.Labels{kindLabel: kind}).Inc()
}

func IncreaseAssessmentsSaved() {
	assessmentsSavedMetric.Inc()
}

// IncreaseSubmissions records a submission attempt; state is "accepted" or "rejected".
func IncreaseSubmissions(state string) {
	submissionsMetric.With(prometheus.Labels{stateLabel: state}).Inc()
}

func IncreaseChaosInjected() {
	chaosInjectedMetric.Inc()
}
