package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/usecase"
)

// AdminServer exposes the administrative API: commitment listing and
// deletion, plus window inspection. It binds to a local address and
// carries no authentication.
type AdminServer struct {
	commitments *usecase.CommitmentUsecase
	windows     repo.WindowRepo
	logger      *slog.Logger
	srv         *http.Server
}

// NewAdminServer creates the admin server.
func NewAdminServer(addr string, commitments *usecase.CommitmentUsecase, windows repo.WindowRepo, logger *slog.Logger) *AdminServer {
	s := &AdminServer{
		commitments: commitments,
		windows:     windows,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/commitments", s.handleListCommitments)
	mux.HandleFunc("DELETE /api/commitments/{id}", s.handleDeleteCommitment)
	mux.HandleFunc("GET /api/windows/{participant}", s.handleGetWindow)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

type commitmentResponse struct {
	ID              int64      `json:"id"`
	Participant     string     `json:"participant"`
	Description     string     `json:"description"`
	CommittedAt     time.Time  `json:"committedAt"`
	ToBeCompletedAt *time.Time `json:"toBeCompletedAt,omitempty"`
	CalendarEventID string     `json:"calendarEventId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type windowMessageResponse struct {
	SenderName string    `json:"senderName"`
	FromMe     bool      `json:"fromMe"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sentAt"`
}

func (s *AdminServer) handleListCommitments(w http.ResponseWriter, r *http.Request) {
	var after time.Time
	if raw := r.URL.Query().Get("toBeCompletedAfter"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "toBeCompletedAfter must be RFC 3339")
			return
		}
		after = parsed
	}

	records, err := s.commitments.ListDueAfter(r.Context(), after)
	if err != nil {
		s.logger.Error("list commitments failed", slog.Any("error", err))
		s.writeError(w, http.StatusInternalServerError, "list commitments failed")
		return
	}

	out := make([]commitmentResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toCommitmentResponse(rec))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"commitments": out})
}

func (s *AdminServer) handleDeleteCommitment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	if err := s.commitments.DeleteByCommitmentID(r.Context(), id); err != nil {
		s.logger.Error("delete commitment failed", slog.Int64("id", id), slog.Any("error", err))
		s.writeError(w, http.StatusInternalServerError, "delete commitment failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *AdminServer) handleGetWindow(w http.ResponseWriter, r *http.Request) {
	participant := r.PathValue("participant")
	messages := s.windows.GetMessages(participant)

	out := make([]windowMessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, windowMessageResponse{
			SenderName: msg.SenderName,
			FromMe:     msg.FromMe,
			Content:    msg.Content,
			SentAt:     msg.SentAt,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"participant": participant,
		"messages":    out,
	})
}

func (s *AdminServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start serves until the listener fails or Stop is called.
func (s *AdminServer) Start() error {
	s.logger.Info("admin server listening", slog.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *AdminServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *AdminServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *AdminServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func toCommitmentResponse(rec *domain.CommitmentRecord) commitmentResponse {
	out := commitmentResponse{
		ID:              rec.ID,
		Participant:     rec.Participant,
		Description:     rec.Description,
		CommittedAt:     rec.CommittedAt,
		CalendarEventID: rec.CalendarEventID,
		CreatedAt:       rec.CreatedAt,
	}
	if !rec.ToBeCompletedAt.IsZero() {
		due := rec.ToBeCompletedAt
		out.ToBeCompletedAt = &due
	}
	return out
}
