package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"fitcrm/internal/database"
	"fitcrm/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("fitcrm.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// AutoMigrate to ensure schema is up to date
	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Profile{},
		&domain.MembershipType{},
		&domain.Member{},
		&domain.Payment{},
		&domain.ClassSchedule{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM class_schedules")
	db.Exec("DELETE FROM members")
	db.Exec("DELETE FROM membership_types")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM studios")
	db.Exec("DELETE FROM users")

	// ================== ADMIN + STUDIO ==================
	log.Println("Creating studio admin...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@fitcrm.local",
		PasswordHash: string(adminHash),
	}
	db.Create(&admin)

	studio := domain.Studio{
		Name:    "Studio Flow Berlin",
		OwnerID: admin.ID,
	}
	db.Create(&studio)

	adminProfile := domain.Profile{
		UserID:    &admin.ID,
		StudioID:  studio.ID,
		Role:      domain.RoleStudioAdmin,
		FirstName: "Maria",
		LastName:  "Schmidt",
	}
	db.Create(&adminProfile)
	log.Println("Admin created: admin@fitcrm.local / Admin123!")

	// ================== MEMBERSHIP TYPES ==================
	log.Println("Creating membership types...")

	basicPrice := int64(3900)
	premiumPrice := int64(6900)
	basicColor := "#4ade80"
	premiumColor := "#f59e0b"

	basic := domain.MembershipType{
		StudioID:          studio.ID,
		Name:              "Basic",
		PriceMonthlyCents: &basicPrice,
		Color:             &basicColor,
		Features:          domain.StringList{"gym access", "2 classes per week"},
	}
	premium := domain.MembershipType{
		StudioID:          studio.ID,
		Name:              "Premium",
		PriceMonthlyCents: &premiumPrice,
		Color:             &premiumColor,
		Features:          domain.StringList{"gym access", "unlimited classes", "sauna"},
	}
	db.Create(&basic)
	db.Create(&premium)

	// ================== MEMBERS ==================
	log.Println("Creating members...")

	names := [][2]string{
		{"Anna", "Weber"},
		{"Jonas", "Becker"},
		{"Lena", "Fischer"},
		{"Tim", "Hoffmann"},
		{"Sofia", "Wagner"},
		{"Max", "Braun"},
	}
	statuses := []domain.MemberStatus{
		domain.StatusActive,
		domain.StatusActive,
		domain.StatusActive,
		domain.StatusPending,
		domain.StatusInactive,
		domain.StatusActive,
	}

	memberIDs := make([]string, 0, len(names))
	for i, n := range names {
		phone := fmt.Sprintf("+49 151 2345 67%02d", i+10)
		profile := domain.Profile{
			StudioID:  studio.ID,
			Role:      domain.RoleMember,
			FirstName: n[0],
			LastName:  n[1],
			Phone:     &phone,
		}
		db.Create(&profile)

		typeID := basic.ID
		if i%2 == 1 {
			typeID = premium.ID
		}
		number := fmt.Sprintf("M-2026-%03d", i+1)
		start := time.Now().AddDate(0, -rand.Intn(12)-1, 0)

		member := domain.Member{
			ProfileID:         profile.ID,
			StudioID:          studio.ID,
			MembershipTypeID:  &typeID,
			MemberNumber:      &number,
			Status:            statuses[i],
			ContractStartDate: &start,
			CreditsBalance:    rand.Intn(20),
			LoyaltyPoints:     rand.Intn(500),
			Tags:              domain.StringList{"seed"},
		}
		db.Create(&member)
		memberIDs = append(memberIDs, member.ID.String())

		// A few months of paid history per active member
		if statuses[i] == domain.StatusActive {
			for m := 0; m < 3; m++ {
				db.Create(&domain.Payment{
					StudioID:    studio.ID,
					MemberID:    member.ID,
					AmountCents: 3900,
					Currency:    "EUR",
					Method:      domain.MethodSEPA,
					Status:      domain.PaymentPaid,
					PaidAt:      time.Now().AddDate(0, -m, 0),
				})
			}
		}
	}
	log.Printf("Created %d members", len(memberIDs))

	// ================== CLASSES ==================
	log.Println("Creating class schedules...")

	classes := []domain.ClassSchedule{
		{StudioID: studio.ID, Name: "Morning Yoga", TrainerName: "Maria Schmidt", Weekday: 1, StartTime: "08:00", EndTime: "09:00", Capacity: 15, Active: true},
		{StudioID: studio.ID, Name: "HIIT", TrainerName: "Jonas Becker", Weekday: 3, StartTime: "18:30", EndTime: "19:30", Capacity: 20, Active: true},
		{StudioID: studio.ID, Name: "Spinning", TrainerName: "Maria Schmidt", Weekday: 5, StartTime: "17:00", EndTime: "18:00", Capacity: 12, Active: false},
	}
	for i := range classes {
		db.Create(&classes[i])
	}

	log.Println("Seed complete")
}
