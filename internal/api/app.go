package api

import (
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/storage"
)

// App is the dependency surface handlers pull from.
type App interface {
	Logger() internal.Logger
	LogRepo() storage.StudyLogRepository
	MilestoneRepo() storage.MilestoneRepository
	SettingsRepo() storage.SettingsRepository
}

type Application struct {
	logger internal.Logger
	store  storage.Store
}

func NewApplication(logger internal.Logger, store storage.Store) *Application {
	return &Application{logger: logger, store: store}
}

func (a *Application) Logger() internal.Logger                   { return a.logger }
func (a *Application) LogRepo() storage.StudyLogRepository       { return a.store }
func (a *Application) MilestoneRepo() storage.MilestoneRepository { return a.store }
func (a *Application) SettingsRepo() storage.SettingsRepository  { return a.store }
