package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

func seedMedicines() []models.Medicine {
	return []models.Medicine{
		{Key: "decold", Name: "DeCold", UnitPrice: decimal.NewFromInt(45), Stock: 50, Category: "Cold & Flu"},
		{Key: "sinex", Name: "Sinex", UnitPrice: decimal.NewFromInt(65), Stock: 30, Category: "Nasal Decongestant"},
		{Key: "paracetamol", Name: "Paracetamol (Crocin)", UnitPrice: decimal.NewFromInt(25), Stock: 100, Category: "Pain Relief"},
		{Key: "ibuprofen", Name: "Ibuprofen (Brufen)", UnitPrice: decimal.NewFromInt(55), Stock: 45, Category: "Pain Relief"},
		{Key: "azithromycin", Name: "Azithromycin", UnitPrice: decimal.NewFromInt(180), Stock: 20, Category: "Antibiotic"},
		{Key: "cetirizine", Name: "Cetirizine", UnitPrice: decimal.NewFromInt(35), Stock: 60, Category: "Antihistamine"},
		{Key: "ors", Name: "ORS", UnitPrice: decimal.NewFromInt(15), Stock: 80, Category: "Rehydration"},
		{Key: "broncho", Name: "Broncho Cough Syrup", UnitPrice: decimal.NewFromInt(95), Stock: 25, Category: "Cough Relief"},
	}
}

func seedDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: 1, Name: "Dr. Romisha Shrestha", Specialty: "General Physician", Rating: 4.8, Available: true, Fee: decimal.NewFromInt(500)},
		{ID: 2, Name: "Dr. Tapasya Adhikari", Specialty: "Cardiologist", Rating: 4.9, Available: true, Fee: decimal.NewFromInt(800)},
		{ID: 3, Name: "Dr. Priya Gurung", Specialty: "Pediatrician", Rating: 4.7, Available: false, Fee: decimal.NewFromInt(600)},
		{ID: 4, Name: "Dr. Suresh KC", Specialty: "General Physician", Rating: 4.6, Available: true, Fee: decimal.NewFromInt(450)},
	}
}

func seedPlans() []models.SubscriptionPlan {
	return []models.SubscriptionPlan{
		{
			ID:                      enums.PlanBasic,
			Name:                    "Basic",
			Price:                   decimal.NewFromInt(300),
			DiscountRate:            decimal.NewFromFloat(0.07),
			DiscountCap:             decimal.NewFromInt(100),
			AppointmentDiscountRate: decimal.Zero,
			AppointmentDiscountCap:  decimal.Zero,
		},
		{
			ID:                      enums.PlanPremium,
			Name:                    "Premium",
			Price:                   decimal.NewFromInt(1000),
			DiscountRate:            decimal.NewFromFloat(0.15),
			DiscountCap:             decimal.NewFromInt(200),
			AppointmentDiscountRate: decimal.NewFromFloat(0.15),
			AppointmentDiscountCap:  decimal.NewFromInt(150),
		},
	}
}

// Migrate creates the catalog tables when auto-migration is enabled.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Medicine{},
		&models.Doctor{},
		&models.SubscriptionPlan{},
	)
}

// Seed upserts the reference dataset. Safe to run repeatedly; existing rows
// are refreshed to the canonical values.
func Seed(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)

	medicines := seedMedicines()
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&medicines).Error; err != nil {
		return fmt.Errorf("seed medicines: %w", err)
	}

	doctors := seedDoctors()
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&doctors).Error; err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}

	plans := seedPlans()
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&plans).Error; err != nil {
		return fmt.Errorf("seed subscription plans: %w", err)
	}

	return nil
}
