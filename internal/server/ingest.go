package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

// Dispatcher accepts inbound messages for asynchronous resolution.
type Dispatcher interface {
	Dispatch(msg domain.WhatsAppMessage) bool
}

// IngestServer exposes the message ingestion boundary over HTTP.
// Messages from participants outside the whitelist are acknowledged
// and dropped.
type IngestServer struct {
	dispatcher Dispatcher
	whitelist  map[string]bool
	logger     *slog.Logger
	srv        *http.Server
}

// NewIngestServer creates the ingestion server. An empty whitelist
// admits every participant.
func NewIngestServer(addr string, dispatcher Dispatcher, whitelisted []string, logger *slog.Logger) *IngestServer {
	var whitelist map[string]bool
	if len(whitelisted) > 0 {
		whitelist = make(map[string]bool, len(whitelisted))
		for _, p := range whitelisted {
			whitelist[p] = true
		}
	}

	s := &IngestServer{
		dispatcher: dispatcher,
		whitelist:  whitelist,
		logger:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /messages", s.handleMessage)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// inboundMessage is the wire shape posted by the WhatsApp relay.
type inboundMessage struct {
	ParticipantMobileNumber string    `json:"participantMobileNumber"`
	SenderName              string    `json:"senderName"`
	FromMe                  bool      `json:"fromMe"`
	Content                 string    `json:"content"`
	SentAt                  time.Time `json:"sentAt"`
}

func (s *IngestServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	var in inboundMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid message body"})
		return
	}
	if in.ParticipantMobileNumber == "" || in.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participantMobileNumber and content are required"})
		return
	}

	if s.whitelist != nil && !s.whitelist[in.ParticipantMobileNumber] {
		s.logger.Debug("dropping message from non-whitelisted participant",
			slog.String("participant", in.ParticipantMobileNumber))
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
		return
	}

	sentAt := in.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	accepted := s.dispatcher.Dispatch(domain.WhatsAppMessage{
		ParticipantID: in.ParticipantMobileNumber,
		SenderName:    in.SenderName,
		FromMe:        in.FromMe,
		Content:       in.Content,
		SentAt:        sentAt,
	})
	if !accepted {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "shutting down"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *IngestServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start serves until the listener fails or Stop is called.
func (s *IngestServer) Start() error {
	s.logger.Info("ingest server listening", slog.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *IngestServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
