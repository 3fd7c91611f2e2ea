package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"nearnote/internal/auth"

	"gorm.io/gorm"
)

type AuthHandler struct {
	DB  *gorm.DB
	JWT *auth.JWT
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	// single-owner agent: only one account may exist
	var count int64
	if err := h.DB.Model(&auth.Account{}).Count(&count).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "device already paired", http.StatusConflict)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	a := auth.Account{Email: req.Email, PasswordHash: hash}
	if err := h.DB.Create(&a).Error; err != nil {
		http.Error(w, "email already used", http.StatusConflict)
		return
	}

	h.issueToken(w, a.ID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	var a auth.Account
	if err := h.DB.Where("email = ?", req.Email).First(&a).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !auth.ComparePassword(a.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.issueToken(w, a.ID)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, accountID uint64) {
	token, err := h.JWT.Sign(accountID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"token": token})
}
