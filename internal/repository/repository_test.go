package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Problem{}, &models.ClassDesign{}, &models.Evaluation{}))
	return db
}

func createProblem(t *testing.T, db *gorm.DB, name string) models.Problem {
	t.Helper()
	problem := models.Problem{Name: name, Requirements: "Build a " + name}
	require.NoError(t, db.Create(&problem).Error)
	return problem
}

func createClassDesign(t *testing.T, db *gorm.DB, problemID uint, name string) models.ClassDesign {
	t.Helper()
	design := models.ClassDesign{
		ProblemID:        problemID,
		Name:             name,
		Responsibilities: models.StringList([]string{"manage " + name}),
		Attributes:       models.StringList([]string{"_items"}),
		Methods:          models.StringList([]string{"getItems"}),
		Relationships:    models.StringList(nil),
	}
	require.NoError(t, db.Create(&design).Error)
	return design
}

func TestProblemRepositoryUpsertUpdatesOnNameConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepository(db)
	ctx := context.Background()

	first := models.Problem{Name: "Parking Lot", Requirements: "v1 requirements"}
	require.NoError(t, repo.Upsert(ctx, &first))

	second := models.Problem{Name: "Parking Lot", Requirements: "v2 requirements"}
	require.NoError(t, repo.Upsert(ctx, &second))

	stored, err := repo.GetByName(ctx, "Parking Lot")
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID)
	require.Equal(t, "v2 requirements", stored.Requirements)

	var count int64
	require.NoError(t, db.Model(&models.Problem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestProblemRepositoryListOrdersByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepository(db)
	ctx := context.Background()

	createProblem(t, db, "Vending Machine")
	createProblem(t, db, "Elevator")

	problems, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	require.Equal(t, "Elevator", problems[0].Name)
	require.Equal(t, "Vending Machine", problems[1].Name)
}

func TestProblemRepositoryDeleteRemovesClasses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Library")
	createClassDesign(t, db, problem.ID, "Catalog")

	require.NoError(t, repo.Delete(ctx, problem.ID))

	_, err := repo.GetByID(ctx, problem.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.ClassDesign{}).Where("problem_id = ?", problem.ID).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestClassDesignRepositoryUpsertUpdatesWithinProblem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassDesignRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Parking Lot")
	other := createProblem(t, db, "Elevator")

	first := models.ClassDesign{
		ProblemID:        problem.ID,
		Name:             "Ticket",
		Responsibilities: models.StringList([]string{"track entry time"}),
		Attributes:       models.StringList(nil),
		Methods:          models.StringList(nil),
		Relationships:    models.StringList(nil),
	}
	require.NoError(t, repo.Upsert(ctx, &first))

	updated := models.ClassDesign{
		ProblemID:        problem.ID,
		Name:             "Ticket",
		Responsibilities: models.StringList([]string{"track entry and exit time"}),
		Attributes:       models.StringList(nil),
		Methods:          models.StringList([]string{"getDuration"}),
		Relationships:    models.StringList(nil),
	}
	require.NoError(t, repo.Upsert(ctx, &updated))

	// Same class name under a different problem is a distinct row.
	sibling := models.ClassDesign{
		ProblemID:        other.ID,
		Name:             "Ticket",
		Responsibilities: models.StringList(nil),
		Attributes:       models.StringList(nil),
		Methods:          models.StringList(nil),
		Relationships:    models.StringList(nil),
	}
	require.NoError(t, repo.Upsert(ctx, &sibling))

	stored, err := repo.GetByName(ctx, problem.ID, "Ticket")
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID)
	require.Equal(t, []string{"track entry and exit time"}, stored.ResponsibilityList())
	require.Equal(t, []string{"getDuration"}, stored.MethodList())

	var count int64
	require.NoError(t, db.Model(&models.ClassDesign{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestClassDesignRepositorySaveCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassDesignRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Parking Lot")
	design := createClassDesign(t, db, problem.ID, "Gate")
	require.False(t, design.HasImplementation())

	require.NoError(t, repo.SaveCode(ctx, design.ID, "class Gate:\n    pass\n"))

	stored, err := repo.GetByID(ctx, design.ID)
	require.NoError(t, err)
	require.True(t, stored.HasImplementation())
	require.Contains(t, stored.Code, "class Gate")
}

func TestClassDesignRepositoryListByProblemPreloadsEvaluations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassDesignRepository(db)
	evalRepo := NewEvaluationRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Parking Lot")
	gate := createClassDesign(t, db, problem.ID, "Gate")
	createClassDesign(t, db, problem.ID, "Attendant")

	result := evaluator.Evaluation{
		OverallScore: 8.3,
		Feedback:     []evaluator.FeedbackItem{{Level: evaluator.LevelGood, Message: "clean split"}},
	}
	evaluation := models.NewEvaluation(gate.ID, models.EvaluationKindDesign, result)
	require.NoError(t, evalRepo.Upsert(ctx, &evaluation))

	designs, err := repo.ListByProblem(ctx, problem.ID)
	require.NoError(t, err)
	require.Len(t, designs, 2)
	require.Equal(t, "Attendant", designs[0].Name)
	require.Equal(t, "Gate", designs[1].Name)
	require.Len(t, designs[1].Evaluations, 1)
	require.InDelta(t, 8.3, designs[1].Evaluations[0].OverallScore, 0.001)
}

func TestEvaluationRepositoryUpsertReplacesSameKind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Parking Lot")
	design := createClassDesign(t, db, problem.ID, "Gate")

	first := models.NewEvaluation(design.ID, models.EvaluationKindDesign, evaluator.Evaluation{OverallScore: 5.0})
	require.NoError(t, repo.Upsert(ctx, &first))

	second := models.NewEvaluation(design.ID, models.EvaluationKindDesign, evaluator.Evaluation{OverallScore: 7.7})
	require.NoError(t, repo.Upsert(ctx, &second))

	implementation := models.NewEvaluation(design.ID, models.EvaluationKindImplementation, evaluator.Evaluation{OverallScore: 6.0})
	require.NoError(t, repo.Upsert(ctx, &implementation))

	designEvals, err := repo.ListByProblem(ctx, problem.ID, models.EvaluationKindDesign)
	require.NoError(t, err)
	require.Len(t, designEvals, 1)
	require.InDelta(t, 7.7, designEvals[0].OverallScore, 0.001)

	implEvals, err := repo.ListByProblem(ctx, problem.ID, models.EvaluationKindImplementation)
	require.NoError(t, err)
	require.Len(t, implEvals, 1)
	require.InDelta(t, 6.0, implEvals[0].OverallScore, 0.001)
}

func TestEvaluationRepositoryListByProblemScopesToProblem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	problem := createProblem(t, db, "Parking Lot")
	other := createProblem(t, db, "Elevator")
	gate := createClassDesign(t, db, problem.ID, "Gate")
	cab := createClassDesign(t, db, other.ID, "Cab")

	gateEval := models.NewEvaluation(gate.ID, models.EvaluationKindDesign, evaluator.Evaluation{OverallScore: 8.0})
	require.NoError(t, repo.Upsert(ctx, &gateEval))
	cabEval := models.NewEvaluation(cab.ID, models.EvaluationKindDesign, evaluator.Evaluation{OverallScore: 4.0})
	require.NoError(t, repo.Upsert(ctx, &cabEval))

	evaluations, err := repo.ListByProblem(ctx, problem.ID, models.EvaluationKindDesign)
	require.NoError(t, err)
	require.Len(t, evaluations, 1)
	require.Equal(t, gate.ID, evaluations[0].ClassDesignID)
}
