package repositories

import (
	"context"
	"testing"

	"kartvizit.link/auth"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (ICardRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Card{}))
	return NewCardRepositoryTx(db), db
}

func newCard(t *testing.T, repo ICardRepository, slug, business, owner string) *models.Card {
	t.Helper()
	card := &models.Card{Slug: slug, CreatorUserID: 1, IsEnabled: true}
	card.SetSection(models.CompanyInfo{BusinessName: business, Email: owner})
	require.NoError(t, repo.CreateCard(context.Background(), card))
	return card
}

func TestUpdateSectionTouchesOnlyItsColumn(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 9, IsSystem: true})
	card := newCard(t, repo, "acme-aaaaaa", "Acme", "o@acme.test")

	require.NoError(t, repo.UpdateSection(ctx, card.ID, models.SocialVideo{Instagram: "https://www.instagram.com/acme"}))

	got, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Social())
	assert.Equal(t, "https://www.instagram.com/acme", got.Social().Instagram)
	require.NotNil(t, got.Company())
	assert.Equal(t, "Acme", got.Company().BusinessName)
	assert.Nil(t, got.About())
	assert.Equal(t, uint(9), got.UpdatedBy)

	err = repo.UpdateSection(ctx, 999, models.ExtraDetails{Note: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateSection(ctx, card.ID, nil)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestUpdateCompanyRefreshesDenormalizedColumns(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	card := newCard(t, repo, "acme-bbbbbb", "Acme", "o@acme.test")

	require.NoError(t, repo.UpdateSection(ctx, card.ID, models.CompanyInfo{BusinessName: "Acme Ltd", Email: "new@acme.test"}))

	got, err := repo.FindBySlug(ctx, "acme-bbbbbb")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", got.BusinessName)
	assert.Equal(t, "new@acme.test", got.OwnerEmail)
}

func TestDeleteKeepsSlugReserved(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 3, IsSystem: true})
	card := newCard(t, repo, "acme-cccccc", "Acme", "o@acme.test")

	require.NoError(t, repo.DeleteCard(ctx, card.ID))
	_, err := repo.FindBySlug(ctx, "acme-cccccc")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := repo.SlugExists(ctx, "acme-cccccc")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, repo.DeleteCard(ctx, card.ID), ErrNotFound)
}

func TestGetAllCardsFiltersAndPaginates(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	newCard(t, repo, "alpha-aaaaaa", "Alpha Çiçek", "a@x.test")
	newCard(t, repo, "beta-bbbbbb", "Beta Yapı", "b@x.test")
	newCard(t, repo, "alpha2-cccccc", "Alpha Yapı", "b@x.test")

	params := queryparams.DefaultListParams("business_name")
	params.OrderBy = "asc"
	cards, total, err := repo.GetAllCards(ctx, params, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, cards, 3)
	assert.Equal(t, "Alpha Yapı", cards[0].BusinessName)

	params.Name = "ALPHA"
	_, total, err = repo.GetAllCards(ctx, params, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	params.Name = ""
	cards, total, err = repo.GetAllCards(ctx, params, "b@x.test")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, c := range cards {
		assert.Equal(t, "b@x.test", c.OwnerEmail)
	}

	params.SortBy = "owner_email; DROP TABLE cards"
	_, _, err = repo.GetAllCards(ctx, params, "")
	require.NoError(t, err)

	n, err := repo.CountCards(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	n, err = repo.CountCards(ctx, "a@x.test")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
