// Package worker exposes helpers to register workflows/activities with a
// Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-worldreward/internal/reward"
	"github.com/ahrav/go-worldreward/internal/rewarding"
	"github.com/ahrav/go-worldreward/internal/workflow"
	"github.com/ahrav/go-worldreward/pkg/activity"
	"github.com/ahrav/go-worldreward/pkg/events"
)

// RegisterAll registers all workflows and activities with the Temporal
// worker. Must be called during worker initialization before starting the
// worker; registration is not thread-safe and should run once at startup.
func RegisterAll(w sdkworker.Worker, service *reward.Service) {
	eventSink := events.NewNoOpEventSink()
	base := activity.NewBaseActivities(eventSink)

	rewardingActivities := rewarding.NewActivities(base, service)

	w.RegisterWorkflow(workflow.RewardWorkflow)

	w.RegisterActivity(rewardingActivities.ScoreCandidate)
	w.RegisterActivity(rewardingActivities.ReloadDomain)
}
