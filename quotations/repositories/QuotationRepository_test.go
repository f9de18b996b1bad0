package repositories

import (
	"fmt"
	"testing"
	"time"

	"quotation-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.ClientAuditLog{},
		&models.Quotation{},
		&models.QuotationLocation{},
		&models.QuotationItem{},
		&models.QuotationAuditLog{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	client := &models.Client{
		ClientName:    "Rahul Mehta",
		CompanyName:   "Acme Traders",
		Email:         uuid.NewString() + "@acmetraders.in",
		ContactNumber: "+91 98200 12345",
		Address:       "14 MG Road, Pune",
		IsActive:      true,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func newQuotation(client *models.Client, date time.Time) *models.Quotation {
	return &models.Quotation{
		ClientID:       client.ID,
		Date:           models.DateOnly(date),
		ValidityPeriod: 30,
		PointOfContact: "Priya Nair",
		Status:         models.DraftQuotation,
		Locations: []models.QuotationLocation{
			{
				LocationName: "Bhiwandi",
				Order:        0,
				Items: []models.QuotationItem{
					{ItemDescription: models.StorageCharges, UnitCost: "100", Quantity: "5", Order: 0},
				},
			},
		},
	}
}

// pinClock fixes the issue date quotation numbers are generated under.
func pinClock(t *testing.T, date time.Time) {
	t.Helper()
	previous := timeNow
	timeNow = func() time.Time { return date }
	t.Cleanup(func() { timeNow = previous })
}

func TestCreateQuotationGeneratesSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	pinClock(t, date)

	first, err := repo.CreateQuotation(newQuotation(client, date))
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-20260815-0001", first.QuotationNumber)

	second, err := repo.CreateQuotation(newQuotation(client, date))
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-20260815-0002", second.QuotationNumber)
}

func TestCreateQuotationSequenceRestartsPerDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)

	pinClock(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	first, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-20260815-0001", first.QuotationNumber)

	pinClock(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC))
	next, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-20260816-0001", next.QuotationNumber)
}

func TestCreateQuotationNumbersBackDatedByIssueDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)
	pinClock(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	// The quotation itself is dated two months back; the number still
	// carries the date it was issued on.
	created, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-20260815-0001", created.QuotationNumber)
}

func TestCreateQuotationKeepsSuppliedNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	quotation := newQuotation(client, date)
	quotation.QuotationNumber = "GW-Q-CUSTOM-0042"
	created, err := repo.CreateQuotation(quotation)
	require.NoError(t, err)
	assert.Equal(t, "GW-Q-CUSTOM-0042", created.QuotationNumber)

	duplicate := newQuotation(client, date)
	duplicate.QuotationNumber = "GW-Q-CUSTOM-0042"
	_, err = repo.CreateQuotation(duplicate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetQuotationByIDOrdersTree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)

	quotation := newQuotation(client, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	quotation.Locations = []models.QuotationLocation{
		{
			LocationName: "Nagpur",
			Order:        1,
			Items: []models.QuotationItem{
				{ItemDescription: models.ValueAdded, UnitCost: "at actual", Quantity: "1", Order: 1},
				{ItemDescription: models.InboundHandling, UnitCost: "50", Quantity: "2", Order: 0},
			},
		},
		{
			LocationName: "Bhiwandi",
			Order:        0,
			Items: []models.QuotationItem{
				{ItemDescription: models.StorageCharges, UnitCost: "100", Quantity: "5", Order: 0},
			},
		},
	}

	created, err := repo.CreateQuotation(quotation)
	require.NoError(t, err)

	loaded, err := repo.GetQuotationByID(created.ID.String())
	require.NoError(t, err)
	require.NotNil(t, loaded.Client)
	require.Len(t, loaded.Locations, 2)
	assert.Equal(t, "Bhiwandi", loaded.Locations[0].LocationName)
	assert.Equal(t, "Nagpur", loaded.Locations[1].LocationName)

	items := loaded.Locations[1].Items
	require.Len(t, items, 2)
	assert.Equal(t, models.InboundHandling, items[0].ItemDescription)
	assert.Equal(t, models.ValueAdded, items[1].ItemDescription)
}

func TestUpdateQuotationReplacesLocations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)

	created, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	created.PointOfContact = "Amit Shah"
	created.Locations = []models.QuotationLocation{
		{
			LocationName: "Indore",
			Order:        0,
			Items: []models.QuotationItem{
				{ItemDescription: models.PickPack, UnitCost: "12", Quantity: "100", Order: 0},
				{ItemDescription: models.WMSPlatform, UnitCost: "at actual", Quantity: "at actual", Order: 1},
			},
		},
	}

	updated, err := repo.UpdateQuotation(created)
	require.NoError(t, err)
	assert.Equal(t, "Amit Shah", updated.PointOfContact)
	require.Len(t, updated.Locations, 1)
	assert.Equal(t, "Indore", updated.Locations[0].LocationName)
	require.Len(t, updated.Locations[0].Items, 2)

	var itemCount int64
	require.NoError(t, db.Model(&models.QuotationItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 2, itemCount)
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)

	created, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(created.ID, models.SentQuotation)
	require.NoError(t, err)
	assert.Equal(t, models.SentQuotation, updated.Status)
}

func TestAuditLogRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)

	created, err := repo.CreateQuotation(newQuotation(client, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	userID := "priya"
	require.NoError(t, repo.CreateAuditLog(&models.QuotationAuditLog{
		QuotationID: created.ID,
		Action:      models.QuotationCreated,
		UserID:      &userID,
	}))

	logs, err := repo.GetAuditLogs(created.ID.String())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.QuotationCreated, logs[0].Action)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "priya", *logs[0].UserID)
}

func TestGetFilteredQuotationsByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	client := seedClient(t, db)
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	draft, err := repo.CreateQuotation(newQuotation(client, date))
	require.NoError(t, err)
	_, err = repo.CreateQuotation(newQuotation(client, date))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(draft.ID, models.SentQuotation)
	require.NoError(t, err)

	sent, total, err := repo.GetFilteredQuotations(10, 0, map[string]string{"status": "sent"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sent, 1)
	assert.Equal(t, draft.ID, sent[0].ID)
}
