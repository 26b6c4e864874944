package authentication

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/models/users"
)

// CreateOrganization - новая организация; создатель сразу начинает
// действовать от ее имени.
func CreateOrganization(w http.ResponseWriter, r *http.Request) {
	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	var org users.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if org.Name == "" {
		http.Error(w, "Organization name is required", http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "Organization name already taken", http.StatusConflict)
			return
		}
		log.Printf("Failed to create organization: %v", err)
		http.Error(w, "Failed to create organization", http.StatusInternalServerError)
		return
	}

	if err := config.DB.Model(&users.User{}).Where("id = ?", claims.UserID).Update("org_id", org.ID).Error; err != nil {
		log.Printf("Failed to attach user %d to organization %d: %v", claims.UserID, org.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(org)
}

// ListOrganizations - список организаций
func ListOrganizations(w http.ResponseWriter, r *http.Request) {
	var orgs []users.Organization
	if err := config.DB.Order("name").Find(&orgs).Error; err != nil {
		log.Printf("Failed to fetch organizations: %v", err)
		http.Error(w, "Failed to fetch organizations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orgs)
}
