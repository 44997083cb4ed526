package handlers

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/lumesistemas/clinic-manager/internal/models"
)

func writeAudit(
	db *gorm.DB,
	clinicID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	var payload string
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			payload = string(b)
		}
	}

	entry := models.AuditLog{
		ClinicID: clinicID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: payload,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Println("audit write:", err)
	}
}
