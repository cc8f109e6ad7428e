package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/repository"
)

func newDesignService(t *testing.T) (DesignService, ProblemService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	validate := newTestValidator()
	problemRepo := repository.NewProblemRepository(db)
	designRepo := repository.NewClassDesignRepository(db)
	problems := NewProblemService(problemRepo, validate, zerolog.Nop())
	designs := NewDesignService(problemRepo, designRepo, validate, zerolog.Nop())
	return designs, problems, db
}

func TestDesignServiceSaveRequiresProblem(t *testing.T) {
	designs, _, _ := newDesignService(t)

	_, err := designs.Save(context.Background(), 42, dto.ClassDesignRequest{Name: "Gate"})
	require.ErrorIs(t, err, ErrProblemNotFound)
}

func TestDesignServiceSaveDropsBlankEntries(t *testing.T) {
	designs, problems, _ := newDesignService(t)
	ctx := context.Background()

	problem, err := problems.Save(ctx, dto.ProblemRequest{Name: "Parking Lot", Requirements: "park cars"})
	require.NoError(t, err)

	saved, err := designs.Save(ctx, problem.ID, dto.ClassDesignRequest{
		Name:             "  Gate  ",
		Responsibilities: []string{"control entry", "  ", ""},
		Attributes:       []string{"_isOpen"},
		Methods:          []string{"open", "close"},
	})
	require.NoError(t, err)
	require.Equal(t, "Gate", saved.Name)
	require.Equal(t, []string{"control entry"}, saved.Responsibilities)
	require.Equal(t, []string{"_isOpen"}, saved.Attributes)
	require.Equal(t, []string{"open", "close"}, saved.Methods)
	require.Empty(t, saved.Relationships)
	require.False(t, saved.HasCode)
}

func TestDesignServiceResaveKeepsCode(t *testing.T) {
	designs, problems, _ := newDesignService(t)
	ctx := context.Background()

	problem, err := problems.Save(ctx, dto.ProblemRequest{Name: "Parking Lot", Requirements: "park cars"})
	require.NoError(t, err)

	saved, err := designs.Save(ctx, problem.ID, dto.ClassDesignRequest{Name: "Gate", Methods: []string{"open"}})
	require.NoError(t, err)

	withCode, err := designs.SaveCode(ctx, problem.ID, saved.ID, dto.ClassCodeRequest{Code: "class Gate:\n    pass\n"})
	require.NoError(t, err)
	require.True(t, withCode.HasCode)

	resaved, err := designs.Save(ctx, problem.ID, dto.ClassDesignRequest{Name: "Gate", Methods: []string{"open", "close"}})
	require.NoError(t, err)
	require.Equal(t, saved.ID, resaved.ID)
	require.True(t, resaved.HasCode)
	require.Equal(t, []string{"open", "close"}, resaved.Methods)
}

func TestDesignServiceGetScopedToProblem(t *testing.T) {
	designs, problems, _ := newDesignService(t)
	ctx := context.Background()

	parking, err := problems.Save(ctx, dto.ProblemRequest{Name: "Parking Lot", Requirements: "park"})
	require.NoError(t, err)
	elevator, err := problems.Save(ctx, dto.ProblemRequest{Name: "Elevator", Requirements: "lift"})
	require.NoError(t, err)

	saved, err := designs.Save(ctx, parking.ID, dto.ClassDesignRequest{Name: "Gate"})
	require.NoError(t, err)

	_, err = designs.Get(ctx, elevator.ID, saved.ID)
	require.ErrorIs(t, err, ErrClassDesignNotFound)

	found, err := designs.Get(ctx, parking.ID, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Gate", found.Name)
}

func TestDesignServiceDelete(t *testing.T) {
	designs, problems, _ := newDesignService(t)
	ctx := context.Background()

	problem, err := problems.Save(ctx, dto.ProblemRequest{Name: "Parking Lot", Requirements: "park"})
	require.NoError(t, err)

	saved, err := designs.Save(ctx, problem.ID, dto.ClassDesignRequest{Name: "Gate"})
	require.NoError(t, err)

	require.NoError(t, designs.Delete(ctx, problem.ID, saved.ID))
	require.ErrorIs(t, designs.Delete(ctx, problem.ID, saved.ID), ErrClassDesignNotFound)
}
