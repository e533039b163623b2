package worker

import (
	"log/slog"

	"github.com/ahrav/go-worldreward/internal/config"
	"github.com/ahrav/go-worldreward/internal/reward"
)

// InitializeRewardService creates a reward service backed by a config store
// rooted at the given directory. Returns both for dependency injection
// rather than setting global state; the store is needed separately to
// attach a config watcher.
func InitializeRewardService(configDir string) (*reward.Service, *config.Store) {
	store := config.NewStore(config.NewLoader(configDir))
	return reward.NewService(store), store
}

// InitializeConfigWatcher starts hot-reloading for the service's config
// directory. The returned watcher must be closed on shutdown. Watching is
// optional; callers that prefer explicit reloads can skip it.
func InitializeConfigWatcher(store *config.Store, logger *slog.Logger) (*config.Watcher, error) {
	return config.NewWatcher(store, logger)
}
