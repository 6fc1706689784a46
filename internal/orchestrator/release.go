package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/config"
	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/service"
	"github.com/compozy/gitworkflow/internal/usecase"
	"go.uber.org/zap"
)

// ReleaseOrchestrator tags a new version on top of an up to date master.
type ReleaseOrchestrator struct {
	gitRepo   repository.GitExtendedRepository
	editor    service.EditorService
	presenter usecase.Presenter
	prompter  usecase.Prompter
	cfg       *config.Config
	logger    *zap.Logger
}

// NewReleaseOrchestrator creates a new release orchestrator.
func NewReleaseOrchestrator(
	gitRepo repository.GitExtendedRepository,
	editor service.EditorService,
	presenter usecase.Presenter,
	prompter usecase.Prompter,
	cfg *config.Config,
	logger *zap.Logger,
) *ReleaseOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ReleaseOrchestrator{
		gitRepo:   gitRepo,
		editor:    editor,
		presenter: presenter,
		prompter:  prompter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute runs the release workflow.
func (o *ReleaseOrchestrator) Execute(ctx context.Context) error {
	original, err := prepareBranch(ctx, o.gitRepo, o.presenter)
	if err != nil {
		return err
	}
	synced := (&usecase.SyncMasterUseCase{
		GitRepo:   o.gitRepo,
		Presenter: o.presenter,
		Prompter:  o.prompter,
	}).Execute(ctx, original)
	if !synced {
		o.presenter.Warn(fmt.Sprintf("Tagging %s without an updated master", original))
	}
	release, err := o.prepareRelease(ctx)
	if err != nil {
		return err
	}
	if err := (&usecase.CreateReleaseTagUseCase{GitRepo: o.gitRepo}).Execute(ctx, release); err != nil {
		return err
	}
	o.presenter.Success(fmt.Sprintf("Created tag %s", release.TagName))
	o.presenter.Table([]string{"Field", "Value"}, [][]string{
		{"Tag", release.TagName},
		{"Previous", release.Previous.String()},
		{"Remote", o.cfg.Remote},
	})
	if err := o.pushTag(ctx, release); err != nil {
		return err
	}
	if synced {
		return returnToBranch(ctx, o.gitRepo, o.presenter, original)
	}
	return nil
}

// prepareRelease asks for the bump and the tag message.
func (o *ReleaseOrchestrator) prepareRelease(ctx context.Context) (*domain.Release, error) {
	answer, err := o.prompter.Prompt(ctx, "Version bump (patch, minor, major)", string(domain.BumpPatch), false)
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseBumpKind(answer)
	if err != nil {
		return nil, err
	}
	release, err := (&usecase.CalculateVersionUseCase{GitRepo: o.gitRepo}).Execute(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate version: %w", err)
	}
	if err := ValidateVersionTag(release.TagName); err != nil {
		return nil, fmt.Errorf("invalid version: %w", err)
	}
	o.presenter.Info(fmt.Sprintf("Releasing %s (previous %s)", release.TagName, release.Previous))
	messageUC := &usecase.PrepareTagMessageUseCase{}
	seed, err := messageUC.Execute(ctx, release)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare tag message: %w", err)
	}
	edited := (&usecase.EditTextUseCase{Editor: o.editor, Presenter: o.presenter}).Execute(ctx, seed)
	release.Message = messageUC.Clean(release, edited)
	o.logger.Debug("prepared release", zap.String("tag", release.TagName), zap.Int("message_length", len(release.Message)))
	return release, nil
}

func (o *ReleaseOrchestrator) pushTag(ctx context.Context, release *domain.Release) error {
	push, err := o.prompter.PromptYesNo(ctx, fmt.Sprintf("Push %s to %s?", release.TagName, o.cfg.Remote), true)
	if err != nil {
		return err
	}
	if !push {
		o.presenter.Warn(fmt.Sprintf("Tag %s was not pushed", release.TagName))
		return nil
	}
	if err := withRetry(ctx, func(ctx context.Context) error {
		return o.gitRepo.PushTag(ctx, release.TagName)
	}); err != nil {
		return fmt.Errorf("failed to push tag %s: %w", release.TagName, err)
	}
	o.presenter.Success(fmt.Sprintf("Pushed %s to %s", release.TagName, o.cfg.Remote))
	return nil
}
