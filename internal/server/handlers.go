package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/mmynk/scavhunt/internal/middleware"
	"github.com/mmynk/scavhunt/internal/models"
)

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Major     string `json:"major"`
	SelfieURL string `json:"selfie_url"`
	Token     string `json:"token"`
}

func toUserResponse(user *models.User, token string) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Major:     user.Major,
		SelfieURL: user.SelfieURL,
		Token:     token,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Email  string `json:"email"`
		Name   string `json:"name"`
		Major  string `json:"major"`
		Selfie string `json:"selfie"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Name, req.Major, req.Selfie)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user, token))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user, token))
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state, err := s.game.State(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGroupPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Photo string `json:"photo"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.game.SubmitGroupPhoto(r.Context(), middleware.GetUserID(r.Context()), req.Photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.game.SubmitAnswer(r.Context(), middleware.GetUserID(r.Context()), req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAssembly(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Building string `json:"building"`
		Floor    string `json:"floor"`
		Aisle    string `json:"aisle"`
		Section  string `json:"section"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.game.SubmitAssembly(r.Context(), middleware.GetUserID(r.Context()),
		req.Building, req.Floor, req.Aisle, req.Section)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.game.VerifyQR(r.Context(), middleware.GetUserID(r.Context()), req.Payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAdminState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := s.admin.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		GameHasStarted       bool `json:"game_has_started"`
		Checkpoint1Completed bool `json:"checkpoint1_completed"`
		Checkpoint2Completed bool `json:"checkpoint2_completed"`
		Checkpoint3Completed bool `json:"checkpoint3_completed"`
		UserCount            int  `json:"user_count"`
	}{
		GameHasStarted:       status.Globals.GameHasStarted,
		Checkpoint1Completed: status.Globals.Checkpoint1Completed,
		Checkpoint2Completed: status.Globals.Checkpoint2Completed,
		Checkpoint3Completed: status.Globals.Checkpoint3Completed,
		UserCount:            status.UserCount,
	})
}

func (s *Server) handleAdminStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	groups, err := s.admin.StartGame(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	sizes := make([]int, len(groups))
	for i, group := range groups {
		sizes[i] = len(group.Slots)
	}

	writeJSON(w, http.StatusOK, struct {
		Groups int   `json:"groups"`
		Sizes  []int `json:"sizes"`
	}{Groups: len(groups), Sizes: sizes})
}

func (s *Server) handleAdminStop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := s.admin.StopGame(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Stopped bool `json:"stopped"`
	}{Stopped: true})
}

// handleAdminQRCode serves the printable QR code for the final checkpoint.
func (s *Server) handleAdminQRCode(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	png, err := s.verifier.PNG()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("scavhunt v" + s.version + "\n"))
}
