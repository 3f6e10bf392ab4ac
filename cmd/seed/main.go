package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voltbay.backend/internal/config"
	"voltbay.backend/internal/infrastructure/models"
	"voltbay.backend/pkg/crypto"
)

var (
	godotenvLoad = godotenv.Load
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
)

// Fixture IDs are fixed so repeated runs upsert instead of duplicating.
var (
	adminID  = uuid.MustParse("11111111-0000-4000-8000-000000000001")
	sellerID = uuid.MustParse("11111111-0000-4000-8000-000000000002")
	buyerID  = uuid.MustParse("11111111-0000-4000-8000-000000000003")
	vendorID = uuid.MustParse("11111111-0000-4000-8000-000000000004")

	catPanelsID    = uuid.MustParse("22222222-0000-4000-8000-000000000001")
	catInvertersID = uuid.MustParse("22222222-0000-4000-8000-000000000002")
	catBatteriesID = uuid.MustParse("22222222-0000-4000-8000-000000000003")
	catMountingID  = uuid.MustParse("22222222-0000-4000-8000-000000000004")

	productPanelID    = uuid.MustParse("33333333-0000-4000-8000-000000000001")
	productInverterID = uuid.MustParse("33333333-0000-4000-8000-000000000002")
	productAuctionID  = uuid.MustParse("33333333-0000-4000-8000-000000000003")

	listingID = uuid.MustParse("44444444-0000-4000-8000-000000000001")
	walletID  = uuid.MustParse("55555555-0000-4000-8000-000000000001")
)

func main() {
	if err := godotenvLoad(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Schema migrated")

	if err := loadFixtures(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✅ Fixtures loaded")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Bid{},
		&models.Order{},
		&models.Payment{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.EnterpriseListing{},
		&models.QuoteRequest{},
		&models.QuoteResponse{},
	)
}

func loadFixtures(db *gorm.DB) error {
	hash, err := crypto.HashPassword("VoltBay2026!")
	if err != nil {
		return err
	}

	users := []models.User{
		{ID: adminID, Email: "admin@voltbay.io", Name: "Admin", PasswordHash: hash, Role: "admin", IsVerified: true},
		{ID: sellerID, Email: "seller@voltbay.io", Name: "Demo Seller", PasswordHash: hash, Role: "seller", IsVerified: true},
		{ID: buyerID, Email: "buyer@voltbay.io", Name: "Demo Buyer", PasswordHash: hash, Role: "buyer", IsVerified: true},
		{ID: vendorID, Email: "vendor@voltbay.io", Name: "Demo Vendor", PasswordHash: hash, Role: "enterprise_vendor", IsVerified: true},
	}

	categories := []models.Category{
		{ID: catPanelsID, Name: "Solar Panels", Slug: "solar-panels"},
		{ID: catInvertersID, Name: "Inverters", Slug: "inverters"},
		{ID: catBatteriesID, Name: "Batteries", Slug: "batteries"},
		{ID: catMountingID, Name: "Mounting Systems", Slug: "mounting-systems"},
	}

	auctionEnd := time.Now().Add(7 * 24 * time.Hour)
	minimumBid := decimal.RequireFromString("150.00")
	products := []models.Product{
		{
			ID:          productPanelID,
			SellerID:    sellerID,
			CategoryID:  catPanelsID,
			Title:       "410W Monocrystalline Panel",
			Description: "High-efficiency mono panel, pallet of one.",
			Specs:       `{"wattage":410,"condition":"NEW"}`,
			Price:       decimal.RequireFromString("189.99"),
			Stock:       25,
			Status:      "ACTIVE",
		},
		{
			ID:          productInverterID,
			SellerID:    sellerID,
			CategoryID:  catInvertersID,
			Title:       "5kW Hybrid Inverter",
			Description: "Grid-tie hybrid inverter with battery input.",
			Specs:       `{"kw":5,"condition":"REFURBISHED"}`,
			Price:       decimal.RequireFromString("849.00"),
			Stock:       5,
			Status:      "ACTIVE",
		},
		{
			ID:             productAuctionID,
			SellerID:       sellerID,
			CategoryID:     catBatteriesID,
			Title:          "10kWh LiFePO4 Battery Bank",
			Description:    "Lightly used storage bank, auction to highest bidder.",
			Specs:          `{"kwh":10,"condition":"USED"}`,
			Price:          decimal.RequireFromString("2000.00"),
			Stock:          1,
			Status:         "ACTIVE",
			IsAuction:      true,
			MinimumBid:     minimumBid,
			AuctionEndDate: &auctionEnd,
		},
	}

	listing := models.EnterpriseListing{
		ID:               listingID,
		VendorID:         vendorID,
		Title:            "Bulk 550W Bifacial Panels",
		Description:      "Container quantities, FOB port of origin.",
		MinOrderQuantity: 100,
		UnitPrice:        decimal.RequireFromString("132.50"),
		LeadTimeDays:     45,
		IsActive:         true,
	}

	wallet := models.Wallet{
		ID:       walletID,
		UserID:   buyerID,
		Balance:  decimal.RequireFromString("5000.00"),
		Currency: "USD",
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&listing).Error; err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&wallet).Error
}
