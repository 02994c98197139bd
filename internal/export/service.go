package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/artifacts"
	"resume-studio/internal/credits"
	"resume-studio/internal/preview"
	"resume-studio/internal/render"
	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/storage/object"
	"resume-studio/internal/shared/telemetry"
)

// DefaultCreditCost is what one export debits.
const DefaultCreditCost = 2

const pdfMimeType = "application/pdf"

// Sessions gives the pipeline read access to a session and a handle on its presentation state.
type Sessions interface {
	Snapshot(ctx context.Context, principal string) (preview.Snapshot, error)
	States(principal string) preview.StateStore
}

// Credits is the balance collaborator.
type Credits interface {
	CanConsume(ctx context.Context, userID string, n int) (bool, credits.Account, error)
	Consume(ctx context.Context, userID string, n int) (credits.Account, error)
}

// Config holds export settings.
type Config struct {
	CreditCost     int
	FilenamePrefix string
	// PublicBaseURL prefixes artifact links handed to share and open modes.
	PublicBaseURL string
	LinkTTL       time.Duration
	Raster        RasterOptions
}

// Service runs the export pipeline.
type Service struct {
	Sessions   Sessions
	Credits    Credits
	Registry   *render.Registry
	Rasterizer Rasterizer
	Assembler  Assembler
	Guard      Guard
	Store      object.ObjectStore
	Artifacts  artifacts.Repo
	Config     Config
	Now        func() time.Time
}

// Request is one export.
type Request struct {
	Principal    string
	Guest        bool
	Kind         preview.Kind
	Capabilities Capabilities
}

// Result describes a finished export and how it is delivered.
type Result struct {
	Artifact artifacts.Artifact
	Mode     Mode
	// PDF is set for direct download.
	PDF []byte
	// URL is set for share and open modes.
	URL     string
	Balance credits.Account
}

func (s *Service) cost() int {
	if s.Config.CreditCost > 0 {
		return s.Config.CreditCost
	}
	return DefaultCreditCost
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Export renders the session's document to a paginated A4 PDF and delivers it.
// The order is: guard, load session, credit gate, capture, render, rasterize, paginate, assemble,
// verify, restore, debit, deliver, record.
func (s *Service) Export(ctx context.Context, req Request) (res Result, err error) {
	if req.Guest {
		return Result{}, ErrLoginRequired
	}
	start := time.Now()
	fields := map[string]any{
		"user_id": req.Principal,
		"kind":    string(req.Kind),
	}

	release, err := s.Guard.Acquire(ctx, req.Principal)
	if err != nil {
		return Result{}, err
	}
	defer release()

	snap, err := s.Sessions.Snapshot(ctx, req.Principal)
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}
	fields["template"] = string(snap.Document.Template)

	ok, _, err := s.Credits.CanConsume(ctx, req.Principal, s.cost())
	if err != nil {
		return Result{}, fmt.Errorf("check credits: %w", err)
	}
	if !ok {
		telemetry.Info("export.blocked", fields)
		return Result{}, ErrInsufficientCredits
	}

	metrics.IncExportStarted()
	telemetry.Info("export.started", fields)
	defer func() {
		metrics.ObserveExportDurationMs(metrics.SinceMillis(start))
		if err != nil {
			metrics.IncExportFailed(failureStage(err))
			fields["error"] = err
			fields["duration_ms"] = metrics.SinceMillis(start)
			telemetry.Error("export.failed", fields)
		}
	}()

	capture, err := BeginCapture(ctx, s.Sessions.States(req.Principal))
	if err != nil {
		return Result{}, fmt.Errorf("begin capture: %w", err)
	}
	defer func() {
		if rerr := capture.Restore(ctx); rerr != nil {
			telemetry.Error("export.restore_failed", map[string]any{"user_id": req.Principal, "error": rerr})
		}
	}()

	pdfBytes, plan, err := s.produce(ctx, req, snap, capture)
	if err != nil {
		return Result{}, err
	}
	if err := capture.Restore(ctx); err != nil {
		return Result{}, fmt.Errorf("restore view: %w", err)
	}

	balance, err := s.Credits.Consume(ctx, req.Principal, s.cost())
	if err != nil {
		if errors.Is(err, credits.ErrInsufficientCredits) {
			return Result{}, ErrInsufficientCredits
		}
		return Result{}, fmt.Errorf("debit credits: %w", err)
	}

	artifact := artifacts.Artifact{
		ID:        uuid.NewString(),
		UserID:    req.Principal,
		Kind:      string(req.Kind),
		Template:  string(snap.Document.Template),
		FileName:  Filename(s.Config.FilenamePrefix, snap.Document.PersonalInfo.FullName, req.Kind),
		Pages:     plan.Pages(),
		SizeBytes: int64(len(pdfBytes)),
		MimeType:  pdfMimeType,
		CreatedAt: s.now().UTC(),
	}
	res, err = s.deliver(ctx, artifact, pdfBytes, ChooseMode(req.Capabilities))
	if err != nil {
		return Result{}, err
	}
	res.Balance = balance

	metrics.IncExportCompleted(plan.Pages(), string(res.Mode))
	fields["pages"] = plan.Pages()
	fields["export_id"] = res.Artifact.ID
	fields["mode"] = string(res.Mode)
	fields["duration_ms"] = metrics.SinceMillis(start)
	telemetry.Info("export.completed", fields)
	return res, nil
}

// produce renders the neutral surface and turns it into a verified PDF.
func (s *Service) produce(ctx context.Context, req Request, snap preview.Snapshot, capture *CaptureContext) ([]byte, Plan, error) {
	state := capture.State()
	labels := render.LabelsFor(snap.Language)
	tree := preview.Build(s.Registry, snap.Document, labels, req.Kind, s.now())
	html, err := preview.Compose(tree, state, preview.Watermark{}, labels.Lang).HTML()
	if err != nil {
		return nil, Plan{}, fmt.Errorf("%w: compose page: %v", ErrRasterize, err)
	}

	opts := s.Config.Raster
	if opts.WidthPx <= 0 {
		opts = DefaultRasterOptions()
	}
	img, err := s.Rasterizer.Rasterize(ctx, html, opts)
	if err != nil {
		return nil, Plan{}, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	b := img.Bounds()
	plan := Paginate(b.Dx(), b.Dy())
	if plan.Pages() == 0 {
		return nil, Plan{}, fmt.Errorf("%w: empty capture %dx%d", ErrRasterize, b.Dx(), b.Dy())
	}

	asm := s.Assembler
	if asm.Title == "" {
		asm.Title = strings.TrimSuffix(Filename(s.Config.FilenamePrefix, snap.Document.PersonalInfo.FullName, req.Kind), ".pdf")
	}
	data, _, err := asm.Assemble(img, plan, tree.Theme.Background)
	if err != nil {
		return nil, Plan{}, err
	}
	if err := Verify(data, plan.Pages()); err != nil {
		return nil, Plan{}, err
	}
	return data, plan, nil
}

// deliver walks the fallback chain from the preferred mode. Link modes need the artifact stored and
// recorded; direct download always succeeds because the PDF travels in the response.
func (s *Service) deliver(ctx context.Context, a artifacts.Artifact, data []byte, preferred Mode) (Result, error) {
	for _, mode := range fallbackChain(preferred) {
		a.DeliveryMode = string(mode)
		if !mode.NeedsStorage() {
			a.Outcome = artifacts.OutcomeDownloaded
			s.keepCopy(ctx, &a, data)
			return Result{Artifact: a, Mode: mode, PDF: data}, nil
		}
		a.Outcome = artifacts.OutcomePending
		url, err := s.publish(ctx, &a, data)
		if err == nil {
			return Result{Artifact: a, Mode: mode, URL: url}, nil
		}
		telemetry.Warn("export.delivery_fallback", map[string]any{
			"user_id":   a.UserID,
			"export_id": a.ID,
			"mode":      string(mode),
			"error":     err,
		})
		if ctx.Err() != nil {
			break
		}
	}
	return Result{}, ErrDelivery
}

// publish stores the PDF, records the artifact and returns a signed link to it.
func (s *Service) publish(ctx context.Context, a *artifacts.Artifact, data []byte) (string, error) {
	if s.Store == nil || s.Artifacts == nil {
		return "", errors.New("artifact storage not configured")
	}
	if err := s.store(ctx, a, data); err != nil {
		return "", err
	}
	if err := s.Artifacts.Create(ctx, *a); err != nil {
		_ = s.Store.Delete(context.WithoutCancel(ctx), a.StorageKey)
		a.StorageKey = ""
		return "", fmt.Errorf("record artifact: %w", err)
	}
	return s.Link(*a)
}

// keepCopy stores and records a directly downloaded artifact for the export history.
// Failures only cost the history entry.
func (s *Service) keepCopy(ctx context.Context, a *artifacts.Artifact, data []byte) {
	if s.Store == nil || s.Artifacts == nil {
		return
	}
	if err := s.store(ctx, a, data); err != nil {
		telemetry.Warn("export.history_store_failed", map[string]any{"export_id": a.ID, "error": err})
	}
	if err := s.Artifacts.Create(ctx, *a); err != nil {
		telemetry.Warn("export.history_record_failed", map[string]any{"export_id": a.ID, "error": err})
	}
}

func (s *Service) store(ctx context.Context, a *artifacts.Artifact, data []byte) error {
	if a.StorageKey != "" {
		return nil
	}
	key, err := object.NewKey("exports", a.UserID, a.FileName)
	if err != nil {
		return err
	}
	obj, err := s.Store.Put(ctx, key, pdfMimeType, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("store artifact: %w", err)
	}
	a.StorageKey = obj.Key
	a.SizeBytes = obj.SizeBytes
	return nil
}

// Link returns the signed file URL for a stored artifact.
func (s *Service) Link(a artifacts.Artifact) (string, error) {
	ttl := s.Config.LinkTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	token, err := auth.SignDownloadToken(a.UserID, a.ID, ttl)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s.Config.PublicBaseURL, "/") + "/api/v1/files/" + token, nil
}

// ReportOutcome records what happened to a shared or opened artifact. A failed share yields
// the fallback link so the client can open the file instead.
func (s *Service) ReportOutcome(ctx context.Context, userID, id, outcome string) (artifacts.Artifact, string, error) {
	if !artifacts.ReportableOutcome(outcome) {
		return artifacts.Artifact{}, "", artifacts.ErrInvalidOutcome
	}
	a, err := s.Artifacts.UpdateOutcome(ctx, userID, id, outcome)
	if err != nil {
		return artifacts.Artifact{}, "", err
	}
	telemetry.Info("export.outcome", map[string]any{"user_id": userID, "export_id": id, "outcome": outcome})
	if outcome != artifacts.OutcomeFailed {
		return a, "", nil
	}
	url, err := s.Link(a)
	if err != nil {
		return a, "", err
	}
	return a, url, nil
}

// List returns the user's export history, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]artifacts.Artifact, error) {
	return s.Artifacts.ListByUser(ctx, userID, limit, offset)
}

// Get returns one artifact owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (artifacts.Artifact, error) {
	return s.Artifacts.GetByID(ctx, userID, id)
}

// Open streams a stored artifact owned by userID. The caller closes the reader.
func (s *Service) Open(ctx context.Context, userID, id string) (artifacts.Artifact, io.ReadCloser, error) {
	a, err := s.Artifacts.GetByID(ctx, userID, id)
	if err != nil {
		return artifacts.Artifact{}, nil, err
	}
	if a.StorageKey == "" {
		return artifacts.Artifact{}, nil, artifacts.ErrNotFound
	}
	rc, err := s.Store.Open(ctx, a.StorageKey)
	if err != nil {
		return artifacts.Artifact{}, nil, err
	}
	return a, rc, nil
}

// OpenLink resolves a signed file token and streams the artifact it names.
func (s *Service) OpenLink(ctx context.Context, token string) (artifacts.Artifact, io.ReadCloser, error) {
	userID, id, err := auth.VerifyDownloadToken(token)
	if err != nil {
		return artifacts.Artifact{}, nil, ErrLinkInvalid
	}
	a, rc, err := s.Open(ctx, userID, id)
	if err != nil {
		return artifacts.Artifact{}, nil, err
	}
	if a.Outcome == artifacts.OutcomePending {
		if _, uerr := s.Artifacts.UpdateOutcome(ctx, userID, id, artifacts.OutcomeOpened); uerr != nil {
			telemetry.Warn("export.outcome_update_failed", map[string]any{"export_id": id, "error": uerr})
		}
	}
	return a, rc, nil
}

// failureStage names the pipeline step an export error came from.
func failureStage(err error) string {
	switch {
	case errors.Is(err, ErrRasterize):
		return "rasterize"
	case errors.Is(err, ErrAssemble):
		return "assemble"
	case errors.Is(err, ErrVerify):
		return "verify"
	case errors.Is(err, ErrDelivery):
		return "delivery"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "internal"
	}
}
