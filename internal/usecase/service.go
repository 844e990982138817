package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type UserRepo interface {
	// GetByExternalID returns nil, nil when the user does not exist.
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
}

type ResumeRepo interface {
	// Upsert stores content as the user's only resume.
	Upsert(ctx context.Context, userID uuid.UUID, content string) (*domain.StoredResume, error)
	// GetByUser returns nil, nil when nothing is stored.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.StoredResume, error)
}

type CoverLetterRepo interface {
	Create(ctx context.Context, cl *domain.CoverLetter) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CoverLetter, error)
	// Get returns nil, nil when the letter does not exist or belongs to
	// another user.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.CoverLetter, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// Suggester produces AI text for a single field or a whole cover letter.
type Suggester interface {
	Improve(ctx context.Context, current, fieldKind, industry string) (string, error)
	WriteCoverLetter(ctx context.Context, u domain.User, in model.CoverLetterInput) (string, error)
}

type ResumeExporter interface {
	Export(ctx context.Context, text string) (*domain.Export, error)
}

// PDFPrinter prints an HTML page straight to PDF.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

type Service struct {
	users    UserRepo
	resumes  ResumeRepo
	letters  CoverLetterRepo
	ai       Suggester
	exporter ResumeExporter
	html     HTMLRenderer
	printer  PDFPrinter
	sessions *Sessions
	now      func() time.Time
	log      zerolog.Logger
}

type Deps struct {
	Users        UserRepo
	Resumes      ResumeRepo
	CoverLetters CoverLetterRepo
	AI           Suggester
	Exporter     ResumeExporter
	HTML         HTMLRenderer
	Printer      PDFPrinter
}

func NewService(d Deps) *Service {
	return &Service{
		users:    d.Users,
		resumes:  d.Resumes,
		letters:  d.CoverLetters,
		ai:       d.AI,
		exporter: d.Exporter,
		html:     d.HTML,
		printer:  d.Printer,
		sessions: NewSessions(),
		now:      time.Now,
		log:      log.With().Str("component", "service").Logger(),
	}
}

func (s *Service) user(ctx context.Context, id domain.Identity) (*domain.User, error) {
	if !id.Valid() {
		return nil, ErrUnauthorized
	}
	u, err := s.users.GetByExternalID(ctx, id.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("lookup user")
		return nil, ErrLoadFailed
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// EnsureUser returns the user record for id, creating it on first sight.
func (s *Service) EnsureUser(ctx context.Context, id domain.Identity) (*domain.User, error) {
	u, err := s.user(ctx, id)
	if !errors.Is(err, ErrUserNotFound) {
		return u, err
	}
	now := s.now()
	u = &domain.User{
		ID:         uuid.New(),
		ExternalID: id.UserID,
		Name:       id.DisplayName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("create user")
		return nil, ErrSaveFailed
	}
	return u, nil
}

// Onboard stores the user's industry profile.
func (s *Service) Onboard(ctx context.Context, id domain.Identity, form model.Onboarding) (*domain.User, error) {
	if !id.Valid() {
		return nil, ErrUnauthorized
	}
	if err := model.ValidateOnboarding(form); err != nil {
		return nil, err
	}
	u, err := s.EnsureUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Industry = strings.TrimSpace(form.Industry)
	u.SubIndustry = strings.TrimSpace(form.SubIndustry)
	u.Bio = strings.TrimSpace(form.Bio)
	u.ExperienceYears = form.Experience
	u.Skills = SplitSkills(form.Skills)
	u.UpdatedAt = s.now()
	if err := s.users.Upsert(ctx, u); err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("update onboarding")
		return nil, ErrSaveFailed
	}
	return u, nil
}

func (s *Service) OnboardingStatus(ctx context.Context, id domain.Identity) (bool, error) {
	u, err := s.EnsureUser(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Onboarded(), nil
}

// LoadResume returns the stored resume or nil when there is none.
func (s *Service) LoadResume(ctx context.Context, id domain.Identity) (*domain.StoredResume, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.resumes.GetByUser(ctx, u.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("load resume")
		return nil, ErrLoadFailed
	}
	return r, nil
}

// SaveResume stores content, or the open session's document when content is
// empty. Saving never changes the session.
func (s *Service) SaveResume(ctx context.Context, id domain.Identity, content string) (*domain.StoredResume, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	sess, sessErr := s.sessions.Get(id.UserID)
	if sess != nil {
		release, err := sess.begin(ActionSave)
		if err != nil {
			return nil, err
		}
		defer release()
	}
	if strings.TrimSpace(content) == "" {
		if sessErr != nil {
			return nil, sessErr
		}
		content = sess.Text()
	}

	r, err := s.resumes.Upsert(ctx, u.ID, NormalizeContent(content))
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("save resume")
		return nil, ErrSaveFailed
	}
	return r, nil
}

func (s *Service) author(id domain.Identity, u *domain.User) string {
	if id.DisplayName != "" {
		return id.DisplayName
	}
	return u.Name
}

// OpenSession opens the user's editor, seeded with the stored resume. An
// already open session is returned as is.
func (s *Service) OpenSession(ctx context.Context, id domain.Identity) (SessionView, error) {
	if !id.Valid() {
		return SessionView{}, ErrUnauthorized
	}
	if sess, err := s.sessions.Get(id.UserID); err == nil {
		return sess.View(), nil
	}
	u, err := s.user(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	stored, err := s.LoadResume(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	var text string
	if stored != nil {
		text = stored.Content
	}
	sess, created := s.sessions.Open(id.UserID, s.author(id, u), text)
	if created {
		s.log.Debug().Str("user", id.UserID).Bool("stored", text != "").Msg("session opened")
	}
	return sess.View(), nil
}

func (s *Service) session(id domain.Identity) (*Session, error) {
	if !id.Valid() {
		return nil, ErrUnauthorized
	}
	return s.sessions.Get(id.UserID)
}

func (s *Service) Session(id domain.Identity) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

// CloseSession drops the user's editor state.
func (s *Service) CloseSession(id domain.Identity) {
	if id.Valid() {
		s.sessions.Close(id.UserID)
	}
}

// UpdateDraft validates d and feeds it to the reconciler. An invalid draft
// is rejected with *model.ValidationError and changes nothing.
func (s *Service) UpdateDraft(id domain.Identity, d model.ResumeDraft) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := model.ValidateDraft(d); err != nil {
		return SessionView{}, err
	}
	return sess.Apply(DraftChanged{Draft: d.Clone()}), nil
}

func (s *Service) ManualEdit(id domain.Identity, text string) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Apply(ManualEdit{Text: text}), nil
}

// ToggleMode switches between auto and manual mode. Leaving manual mode
// with edits the draft cannot reproduce fails with ErrConfirmDiscard unless
// confirm is set.
func (s *Service) ToggleMode(id domain.Identity, confirm bool) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Toggle(confirm)
}

func (s *Service) FocusTab(id domain.Identity, tab string) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	if tab != TabEdit && tab != TabPreview {
		return SessionView{}, errors.Wrap(ErrUnknownTab, tab)
	}
	return sess.Apply(TabFocus{Tab: tab}), nil
}

// Improve replaces one draft field with an AI suggestion. On any failure the
// draft is left exactly as it was.
func (s *Service) Improve(ctx context.Context, id domain.Identity, ref FieldRef) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	u, err := s.user(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	release, err := sess.begin(ActionImprove)
	if err != nil {
		return SessionView{}, err
	}
	defer release()

	current, err := ref.Read(sess.View().Draft)
	if err != nil {
		return SessionView{}, errors.Wrap(ErrNotFound, err.Error())
	}
	if strings.TrimSpace(current) == "" {
		return SessionView{}, ErrEmptyField
	}

	suggested, err := s.ai.Improve(ctx, current, string(ref.Kind), u.IndustryContext())
	if err == nil && strings.TrimSpace(suggested) == "" {
		err = errors.New("empty suggestion")
	}
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Str("field", string(ref.Kind)).Msg("improve")
		return sess.View(), ErrImproveFailed
	}

	view, err := sess.update(func(d model.ResumeDraft) (model.ResumeDraft, error) {
		return ref.Write(d, suggested)
	})
	if err != nil {
		// the entry went away while the suggestion was being generated
		s.log.Warn().Err(err).Str("user", id.UserID).Msg("improve target vanished")
		return view, ErrImproveFailed
	}
	return view, nil
}

// ExportResume exports the session's visible document, or the stored resume
// when no session is open.
func (s *Service) ExportResume(ctx context.Context, id domain.Identity) (*domain.Export, error) {
	if !id.Valid() {
		return nil, ErrUnauthorized
	}
	var text string
	if sess, err := s.sessions.Get(id.UserID); err == nil {
		release, err := sess.begin(ActionExport)
		if err != nil {
			return nil, err
		}
		defer release()
		text = sess.Text()
	} else {
		stored, err := s.LoadResume(ctx, id)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, ErrNoSession
		}
		text = stored.Content
	}

	exp, err := s.exporter.Export(ctx, text)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("export resume")
		return nil, err
	}
	return exp, nil
}

// GenerateCoverLetter writes a cover letter for the job from the user's
// profile and stores it.
func (s *Service) GenerateCoverLetter(ctx context.Context, id domain.Identity, in model.CoverLetterInput) (*domain.CoverLetter, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateCoverLetterInput(in); err != nil {
		return nil, err
	}
	content, err := s.ai.WriteCoverLetter(ctx, *u, in)
	if err == nil && strings.TrimSpace(content) == "" {
		err = errors.New("empty cover letter")
	}
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Str("company", in.CompanyName).Msg("generate cover letter")
		return nil, ErrCoverLetterFailed
	}
	now := s.now()
	cl := &domain.CoverLetter{
		ID:             uuid.New(),
		UserID:         u.ID,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		JobDescription: strings.TrimSpace(in.JobDescription),
		Content:        content,
		Status:         domain.CoverLetterCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.letters.Create(ctx, cl); err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("store cover letter")
		return nil, ErrSaveFailed
	}
	return cl, nil
}

func (s *Service) ListCoverLetters(ctx context.Context, id domain.Identity) ([]domain.CoverLetter, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.letters.ListByUser(ctx, u.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("list cover letters")
		return nil, ErrLoadFailed
	}
	return out, nil
}

func (s *Service) CoverLetter(ctx context.Context, id domain.Identity, letterID uuid.UUID) (*domain.CoverLetter, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	cl, err := s.letters.Get(ctx, u.ID, letterID)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("get cover letter")
		return nil, ErrLoadFailed
	}
	if cl == nil {
		return nil, ErrNotFound
	}
	return cl, nil
}

func (s *Service) DeleteCoverLetter(ctx context.Context, id domain.Identity, letterID uuid.UUID) error {
	u, err := s.user(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.letters.Delete(ctx, u.ID, letterID)
	if err != nil {
		s.log.Error().Err(err).Str("user", id.UserID).Msg("delete cover letter")
		return ErrSaveFailed
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// CoverLetterPDF prints a stored cover letter to PDF.
func (s *Service) CoverLetterPDF(ctx context.Context, id domain.Identity, letterID uuid.UUID) ([]byte, error) {
	cl, err := s.CoverLetter(ctx, id, letterID)
	if err != nil {
		return nil, err
	}
	page, err := s.html.RenderHTML(cl.Content)
	if err != nil {
		return nil, &ExportError{Stage: StageRender, Err: err}
	}
	pdf, err := s.printer.PrintPDF(ctx, page)
	if err != nil {
		return nil, &ExportError{Stage: StageAssemble, Err: err}
	}
	return pdf, nil
}
