package integration

import (
	"context"
	"testing"
	"time"

	"dapur-manis/internal/model"
	"dapur-manis/internal/ordernumber"
	"dapur-manis/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestUser(t *testing.T, userRepo repository.UserRepository) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@dapurmanis.id",
		PasswordHash: "$2a$04$notachecked",
		Name:         "Admin",
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func insertTestProduct(t *testing.T, productRepo repository.ProductRepository, name string, price int64, available bool) *model.Product {
	t.Helper()
	now := time.Now()
	p := &model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "integration test product",
		Price:       decimal.NewFromInt(price),
		ImageURL:    "https://cdn.example.com/p.jpg",
		Category:    "Brownies",
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, productRepo.Create(context.Background(), p))
	return p
}

func TestProductRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)

	created := insertTestProduct(t, productRepo, "Brownies Panggang", 85000, true)
	insertTestProduct(t, productRepo, "Nastar Premium", 120000, false)

	t.Run("get by id", func(t *testing.T) {
		got, err := productRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Brownies Panggang", got.Name)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(85000)))
	})

	t.Run("get by id absent", func(t *testing.T) {
		got, err := productRepo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list with available filter", func(t *testing.T) {
		available := true
		products, err := productRepo.List(ctx, model.ProductFilter{Available: &available, Limit: 10})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Brownies Panggang", products[0].Name)
	})

	t.Run("find unavailable flags missing and disabled products", func(t *testing.T) {
		var disabledID uuid.UUID
		all, err := productRepo.List(ctx, model.ProductFilter{Limit: 10})
		require.NoError(t, err)
		for _, p := range all {
			if !p.IsAvailable {
				disabledID = p.ID
			}
		}
		missing := uuid.New()

		unavailable, err := productRepo.FindUnavailable(ctx, []uuid.UUID{created.ID, disabledID, missing})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{disabledID, missing}, unavailable)
	})

	t.Run("exists by name", func(t *testing.T) {
		exists, err := productRepo.ExistsByName(ctx, "Brownies Panggang")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = productRepo.ExistsByName(ctx, "Unknown Cake")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update and delete", func(t *testing.T) {
		created.Price = decimal.NewFromInt(90000)
		created.UpdatedAt = time.Now()
		found, err := productRepo.Update(ctx, created)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := productRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(90000)))

		found, err = productRepo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, found)

		got, err = productRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestOrderRepository_SequenceIsContiguous(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	orderRepo := repository.NewOrderRepository(db.Pool, logger)

	dayKey := ordernumber.DayKey(time.Now())
	for want := 1; want <= 5; want++ {
		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		seq, err := orderRepo.NextOrderSequence(ctx, tx, dayKey)
		require.NoError(t, err)
		assert.Equal(t, want, seq)

		require.NoError(t, tx.Commit(ctx))
	}

	// A different day starts its own counter.
	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	seq, err := orderRepo.NextOrderSequence(ctx, tx, "991231")
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
	require.NoError(t, tx.Commit(ctx))
}

func TestSessionRepository_AssociationsAndActiveWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	sessionRepo := repository.NewSessionRepository(db.Pool, logger)
	userRepo := repository.NewUserRepository(db.Pool, logger)

	user := insertTestUser(t, userRepo)
	p1 := insertTestProduct(t, productRepo, "Brownies", 85000, true)
	p2 := insertTestProduct(t, productRepo, "Nastar", 120000, true)

	now := time.Now()
	open := &model.POSession{
		ID:          uuid.New(),
		Name:        "PO Maret",
		StartDate:   now.Add(-24 * time.Hour),
		EndDate:     now.Add(24 * time.Hour),
		Status:      model.SessionActive,
		CreatedByID: user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, sessionRepo.Create(ctx, open, []uuid.UUID{p1.ID, p2.ID}))

	expired := &model.POSession{
		ID:          uuid.New(),
		Name:        "PO Februari",
		StartDate:   now.Add(-72 * time.Hour),
		EndDate:     now.Add(-48 * time.Hour),
		Status:      model.SessionActive,
		CreatedByID: user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, sessionRepo.Create(ctx, expired, []uuid.UUID{p1.ID}))

	t.Run("active listing excludes expired windows", func(t *testing.T) {
		active, err := sessionRepo.ListActive(ctx, now)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "PO Maret", active[0].Name)
	})

	t.Run("products by session", func(t *testing.T) {
		products, err := sessionRepo.ProductsBySession(ctx, []uuid.UUID{open.ID, expired.ID})
		require.NoError(t, err)
		assert.Len(t, products[open.ID], 2)
		assert.Len(t, products[expired.ID], 1)
	})

	t.Run("update replaces the product set", func(t *testing.T) {
		open.UpdatedAt = time.Now()
		found, err := sessionRepo.Update(ctx, open, []uuid.UUID{p2.ID})
		require.NoError(t, err)
		assert.True(t, found)

		products, err := sessionRepo.ProductsBySession(ctx, []uuid.UUID{open.ID})
		require.NoError(t, err)
		require.Len(t, products[open.ID], 1)
		assert.Equal(t, p2.ID, products[open.ID][0].ID)
	})

	t.Run("delete cascades associations", func(t *testing.T) {
		found, err := sessionRepo.Delete(ctx, expired.ID)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := sessionRepo.GetByID(ctx, expired.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
