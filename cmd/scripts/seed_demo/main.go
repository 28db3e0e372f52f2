package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sweeply/fieldops/internal/config"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/utils"
)

// Seeds a small demo dataset: one client, two masters, a store and a major
// project with two minor projects. Safe to re-run; it skips when demo data
// already exists.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		os.Exit(1)
	}
	db := models.GetDB()

	var count int64
	db.Model(&models.Profile{}).Where("email = ?", "client@demo.fieldops.local").Count(&count)
	if count > 0 {
		fmt.Println("Demo data already present, nothing to do")
		return
	}

	password, err := utils.HashPassword("demo1234")
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	client := models.Profile{Role: models.RoleClient, Name: "김사장", Email: "client@demo.fieldops.local", Password: password, IsActive: true}
	master1 := models.Profile{Role: models.RoleMaster, Name: "박기사", Email: "master1@demo.fieldops.local", Password: password, IsActive: true}
	master2 := models.Profile{Role: models.RoleMaster, Name: "이기사", Email: "master2@demo.fieldops.local", Password: password, IsActive: true}
	for _, p := range []*models.Profile{&client, &master1, &master2} {
		if err := db.Create(p).Error; err != nil {
			fmt.Printf("Failed to create profile %s: %v\n", p.Email, err)
			os.Exit(1)
		}
	}

	store := models.Store{Name: "강남 A매장", Address: "서울 강남구", ClientID: &client.ID, MasterID: &master1.ID, IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		fmt.Printf("Failed to create store: %v\n", err)
		os.Exit(1)
	}

	scheduled := time.Now().AddDate(0, 0, 7)
	major := models.MajorProject{
		Title:         "강남 A매장 정기 청소",
		Location:      "서울 강남구",
		ServiceType:   models.ServiceTypeCleaning,
		Status:        models.MajorStatusRecruiting,
		ScheduledDate: &scheduled,
		ClientID:      client.ID,
		StoreID:       &store.ID,
	}
	if err := db.Create(&major).Error; err != nil {
		fmt.Printf("Failed to create major project: %v\n", err)
		os.Exit(1)
	}

	minors := []models.MinorProject{
		{MajorProjectID: major.ID, Title: "외부 유리창 청소", Status: models.MinorStatusInProgress, RequiredMasters: 2},
		{MajorProjectID: major.ID, Title: "주방 후드 세척", Status: models.MinorStatusInProgress, RequiredMasters: 1},
	}
	for i := range minors {
		if err := db.Create(&minors[i]).Error; err != nil {
			fmt.Printf("Failed to create minor project: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Demo data created:")
	fmt.Printf("  client:  client@demo.fieldops.local / demo1234\n")
	fmt.Printf("  masters: master1@demo.fieldops.local, master2@demo.fieldops.local / demo1234\n")
	fmt.Printf("  major project %q with %d minor projects\n", major.Title, len(minors))
}
