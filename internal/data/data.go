package data

import (
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
	"github.com/prithvianilk/my-besto-friendo/internal/conf"
)

// Repositories contains all repositories.
type Repositories struct {
	Window     repo.WindowRepo
	Commitment repo.CommitmentRepo
	Calendar   repo.CalendarRepo
	Completion repo.CompletionRepo
}

// NewRepositories creates all repositories from configuration.
func NewRepositories(cfg *conf.Config) (*Repositories, error) {
	commitmentRepo, err := NewCommitmentRepo(cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Window:     NewWindowStore(cfg.Window.MaxSize),
		Commitment: commitmentRepo,
		Calendar:   NewCalendarRepo(cfg.Lark.AppID, cfg.Lark.AppSecret, cfg.Lark.CalendarID, cfg.Lark.Timezone),
		Completion: NewCompletionRepo(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout),
	}, nil
}
