package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"telegram-birthday-app/internal/domain"
	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/infra/logging"
	"telegram-birthday-app/internal/usecase"
)

type createUserRequest struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Photo     *string `json:"photo"`
}

type saveBirthdateRequest struct {
	UserID    int64      `json:"user_id"`
	Birthdate model.Date `json:"birthdate"`
}

type userResponse struct {
	UserID    int64       `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Username  *string     `json:"username"`
	Photo     *string     `json:"photo"`
	Birthdate *model.Date `json:"birthdate"`
}

// profileUserResponse mirrors userResponse except for birthdate: the Mini App
// expects the literal 0 when no birthdate has been saved yet, and the ISO
// string otherwise.
type profileUserResponse struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Photo     *string `json:"photo"`
	Birthdate any     `json:"birthdate"`
}

type profileResponse struct {
	User     profileUserResponse `json:"user"`
	TimeLeft int64               `json:"time_left"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func usecaseParams(req createUserRequest) usecase.NewUserParams {
	return usecase.NewUserParams{
		TelegramID: req.UserID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
		Photo:      req.Photo,
	}
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		UserID:    u.TelegramID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Photo:     u.Photo,
		Birthdate: u.Birthdate,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

// userIDParam parses the {userID} path segment.
func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.userUC.Count(ctx)
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("count users")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		TotalUsers int `json:"total_users"`
	}{TotalUsers: total})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, created, err := s.userUC.CreateOrGet(ctx, usecaseParams(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("create user")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	msg := "User already created"
	if created {
		msg = "User created"
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := s.userUC.GetByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("get user")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) handleSaveBirthdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveBirthdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Birthdate.IsZero() {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := s.userUC.SetBirthdate(ctx, req.UserID, req.Birthdate); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("save birthdate")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Birthdate updated successfully"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	view, err := s.profileUC.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("get profile")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	u := view.User
	resp := profileResponse{
		User: profileUserResponse{
			UserID:    u.TelegramID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Username:  u.Username,
			Photo:     u.Photo,
			Birthdate: 0,
		},
		TimeLeft: view.TimeLeft,
	}
	if u.Birthdate != nil {
		resp.User.Birthdate = u.Birthdate.String()
	}
	s.writeJSON(w, http.StatusOK, resp)
}
