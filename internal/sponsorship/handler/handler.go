package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"parrainage/internal/sponsorship/models"
	"parrainage/internal/sponsorship/service"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/httputil"
	"parrainage/pkg/platform/middleware/admin"
	"parrainage/pkg/requestcontext"
)

// Service defines the sponsorship operations exposed over HTTP.
type Service interface {
	SubmitRequest(ctx context.Context, actor id.Actor, childID id.ChildID, profile models.Profile) (*models.SponsorshipRequest, error)
	ApproveRequest(ctx context.Context, requestID id.RequestID, actor id.Actor) (*models.ApprovalResult, error)
	RejectRequest(ctx context.Context, requestID id.RequestID, actor id.Actor, reason string) (*models.SponsorshipRequest, error)
	ListRequests(ctx context.Context, actor id.Actor, status models.RequestStatus) ([]*models.SponsorshipRequest, error)
	Pause(ctx context.Context, ids []id.SponsorshipID, reason string, actor id.Actor) (*models.BulkResult, error)
	Resume(ctx context.Context, ids []id.SponsorshipID, reason string, actor id.Actor) (*models.BulkResult, error)
	MarkTemporary(ctx context.Context, sponsorshipID id.SponsorshipID, endPlanned time.Time, actor id.Actor) (*models.TransitionResult, error)
	Terminate(ctx context.Context, in service.TerminateInput, actor id.Actor) (*models.TransitionResult, error)
	TransferChild(ctx context.Context, childID id.ChildID, from, to id.SponsorID, actor id.Actor) (*models.TransferResult, error)
	ReconcileChild(ctx context.Context, childID id.ChildID, actor id.Actor) (*models.Child, bool, error)
	GetSponsorship(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) (*models.Sponsorship, error)
	ListHistory(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) ([]*models.HistoryEntry, error)
	ListSponsorshipsForSponsor(ctx context.Context, sponsorID id.SponsorID, actor id.Actor) ([]*models.Sponsorship, error)
	AddNote(ctx context.Context, sponsorshipID id.SponsorshipID, content string, actor id.Actor) (*models.Note, error)
	ListNotes(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) ([]*models.Note, error)
}

// Handler wires sponsorship endpoints to the lifecycle service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a sponsorship handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the /v1 sponsorship routes. The caller must have installed
// auth.RequireAuth on r; role checks are applied here.
func (h *Handler) Register(r chi.Router) {
	staff := admin.RequireStaff(h.logger)

	r.Post("/v1/sponsorship-requests", h.HandleSubmitRequest)
	r.With(staff).Get("/v1/sponsorship-requests", h.HandleListRequests)
	r.With(staff).Post("/v1/sponsorship-requests/{id}/approve", h.HandleApproveRequest)
	r.With(staff).Post("/v1/sponsorship-requests/{id}/reject", h.HandleRejectRequest)

	r.With(staff).Post("/v1/sponsorships/pause", h.HandleBulkPause)
	r.With(staff).Post("/v1/sponsorships/resume", h.HandleBulkResume)
	r.Get("/v1/sponsorships/{id}", h.HandleGetSponsorship)
	r.Get("/v1/sponsorships/{id}/history", h.HandleListHistory)
	r.With(staff).Post("/v1/sponsorships/{id}/temporary", h.HandleMarkTemporary)
	r.Post("/v1/sponsorships/{id}/terminate", h.HandleTerminate)
	r.With(staff).Get("/v1/sponsorships/{id}/notes", h.HandleListNotes)
	r.With(staff).Post("/v1/sponsorships/{id}/notes", h.HandleAddNote)

	r.With(staff).Post("/v1/children/{id}/transfer", h.HandleTransfer)
	r.With(admin.RequireRole(h.logger, id.RoleAdmin)).Post("/v1/children/{id}/reconcile", h.HandleReconcile)

	r.Get("/v1/me/sponsorships", h.HandleMySponsorships)
}

// HandleSubmitRequest handles POST /v1/sponsorship-requests.
func (h *Handler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, err := httputil.DecodeAndValidate[SubmitRequestRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid sponsorship request", err)
		return
	}

	created, err := h.service.SubmitRequest(ctx, actor, req.childID, req.Profile())
	if err != nil {
		h.writeError(ctx, w, "sponsorship request submission failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toRequestResponse(created))
}

// HandleListRequests handles GET /v1/sponsorship-requests?status=.
func (h *Handler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	status := models.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := h.service.ListRequests(ctx, actor, status)
	if err != nil {
		h.writeError(ctx, w, "listing sponsorship requests failed", err)
		return
	}
	out := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse[RequestResponse]{Items: out})
}

// HandleApproveRequest handles POST /v1/sponsorship-requests/{id}/approve.
func (h *Handler) HandleApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.ApproveRequest(ctx, requestID, actor)
	if err != nil {
		h.writeError(ctx, w, "sponsorship request approval failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ApprovalResponse{
		Request:     toRequestResponse(res.Request),
		Sponsorship: toSponsorshipResponse(res.Sponsorship),
		Warnings:    res.Warnings,
	})
}

// HandleRejectRequest handles POST /v1/sponsorship-requests/{id}/reject.
func (h *Handler) HandleRejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.DecodeOptionalAndValidate[RejectRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid rejection", err)
		return
	}

	rejected, err := h.service.RejectRequest(ctx, requestID, actor, req.Reason)
	if err != nil {
		h.writeError(ctx, w, "sponsorship request rejection failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRequestResponse(rejected))
}

// HandleBulkPause handles POST /v1/sponsorships/pause.
func (h *Handler) HandleBulkPause(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.service.Pause)
}

// HandleBulkResume handles POST /v1/sponsorships/resume.
func (h *Handler) HandleBulkResume(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.service.Resume)
}

type bulkFunc func(ctx context.Context, ids []id.SponsorshipID, reason string, actor id.Actor) (*models.BulkResult, error)

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request, run bulkFunc) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, err := httputil.DecodeAndValidate[BulkRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid bulk request", err)
		return
	}

	res := &models.BulkResult{}
	if len(req.ids) > 0 {
		res, err = run(ctx, req.ids, req.Reason, actor)
		if err != nil {
			h.writeError(ctx, w, "bulk operation failed", err)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, toBulkResponse(req.merge(res)))
}

// HandleGetSponsorship handles GET /v1/sponsorships/{id}.
func (h *Handler) HandleGetSponsorship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	sp, err := h.service.GetSponsorship(ctx, sid, actor)
	if err != nil {
		h.writeError(ctx, w, "loading sponsorship failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSponsorshipResponse(sp))
}

// HandleListHistory handles GET /v1/sponsorships/{id}/history.
func (h *Handler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	entries, err := h.service.ListHistory(ctx, sid, actor)
	if err != nil {
		h.writeError(ctx, w, "listing history failed", err)
		return
	}
	out := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse[HistoryResponse]{Items: out})
}

// HandleMarkTemporary handles POST /v1/sponsorships/{id}/temporary.
func (h *Handler) HandleMarkTemporary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	req, err := httputil.DecodeAndValidate[TemporaryRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid temporary request", err)
		return
	}

	res, err := h.service.MarkTemporary(ctx, sid, req.endPlanned, actor)
	if err != nil {
		h.writeError(ctx, w, "marking sponsorship temporary failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransitionResponse(res))
}

// HandleTerminate handles POST /v1/sponsorships/{id}/terminate.
func (h *Handler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	req, err := httputil.DecodeAndValidate[TerminateRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid termination", err)
		return
	}

	res, err := h.service.Terminate(ctx, service.TerminateInput{
		SponsorshipID: sid,
		Date:          req.endDate,
		Reason:        req.Reason,
		Comment:       req.Comment,
	}, actor)
	if err != nil {
		h.writeError(ctx, w, "sponsorship termination failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransitionResponse(res))
}

// HandleListNotes handles GET /v1/sponsorships/{id}/notes.
func (h *Handler) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	notes, err := h.service.ListNotes(ctx, sid, actor)
	if err != nil {
		h.writeError(ctx, w, "listing notes failed", err)
		return
	}
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse[NoteResponse]{Items: out})
}

// HandleAddNote handles POST /v1/sponsorships/{id}/notes.
func (h *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	sid, ok := sponsorshipParam(w, r)
	if !ok {
		return
	}
	req, err := httputil.DecodeAndValidate[NoteRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid note", err)
		return
	}

	note, err := h.service.AddNote(ctx, sid, req.Content, actor)
	if err != nil {
		h.writeError(ctx, w, "adding note failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toNoteResponse(note))
}

// HandleTransfer handles POST /v1/children/{id}/transfer.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	childID, err := id.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.DecodeAndValidate[TransferRequest](r)
	if err != nil {
		h.writeError(ctx, w, "invalid transfer", err)
		return
	}

	res, err := h.service.TransferChild(ctx, childID, req.from, req.to, actor)
	if err != nil {
		h.writeError(ctx, w, "child transfer failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferResponse{
		Previous: toSponsorshipResponse(res.Previous),
		Current:  toSponsorshipResponse(res.Current),
		Warnings: res.Warnings,
	})
}

// HandleReconcile handles POST /v1/children/{id}/reconcile.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	childID, err := id.ParseChildID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	child, repaired, err := h.service.ReconcileChild(ctx, childID, actor)
	if err != nil {
		h.writeError(ctx, w, "child reconciliation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReconcileResponse{
		Child:    toChildResponse(child),
		Repaired: repaired,
	})
}

// HandleMySponsorships handles GET /v1/me/sponsorships.
func (h *Handler) HandleMySponsorships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	list, err := h.service.ListSponsorshipsForSponsor(ctx, actor.ID, actor)
	if err != nil {
		h.writeError(ctx, w, "listing sponsorships failed", err)
		return
	}
	out := make([]SponsorshipResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, toSponsorshipResponse(sp))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse[SponsorshipResponse]{Items: out})
}

// actor returns the authenticated actor or writes 401.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (id.Actor, bool) {
	actor, ok := requestcontext.Actor(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.Actor{}, false
	}
	return actor, true
}

func sponsorshipParam(w http.ResponseWriter, r *http.Request) (id.SponsorshipID, bool) {
	sid, err := id.ParseSponsorshipID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.SponsorshipID{}, false
	}
	return sid, true
}

// writeError logs at a level matching the error class and writes the response.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if reason := dErrors.ReasonOf(err); reason != "" {
		attrs = append(attrs, "reason", reason)
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
