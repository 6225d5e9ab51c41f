package view

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

func newSession(t *testing.T) (*Session, *expense.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(expense.State{NextID: 1}, nil)

	svc := expense.NewService(repo)
	require.NoError(t, svc.Open(context.Background()))

	return NewSession(svc), repo
}

func TestSession_Import(t *testing.T) {
	s, repo := newSession(t)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	in := "id,date,category,amount,note\n9,2024-01-05,Food,10.00,\n12,2024-01-06,Travel,20,train\n"

	created, err := s.Import(context.Background(), importer.FormatCSV, strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(2), created[1].ID)
	assert.Equal(t, "train", created[1].Note)
}

func TestSession_ImportRejectsInvalidRow(t *testing.T) {
	s, _ := newSession(t)

	in := "id,date,category,amount,note\n1,2024-01-05,Food,10.00,\n2,2024-01-06,Travel,-3,\n"

	_, err := s.Import(context.Background(), importer.FormatCSV, strings.NewReader(in))
	require.ErrorIs(t, err, expense.ErrInvalidAmount)

	assert.Empty(t, s.List(context.Background(), expense.ListFilter{}))
}

func TestSession_UpdateAndDelete(t *testing.T) {
	s, repo := newSession(t)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	ctx := context.Background()

	e, err := s.Create(ctx, expense.CreateParams{Amount: "4.20", Category: "Coffee", Date: "2024-05-01"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, e.ID, expense.CreateParams{Note: "flat white"})
	require.NoError(t, err)
	assert.Equal(t, int64(420), updated.Amount)
	assert.Equal(t, "flat white", updated.Note)

	require.NoError(t, s.Delete(ctx, e.ID))
	assert.ErrorIs(t, s.Delete(ctx, e.ID), expense.ErrNotFound)
}

func TestSession_SaveFailure(t *testing.T) {
	s, repo := newSession(t)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := s.Create(context.Background(), expense.CreateParams{Amount: "1", Category: "x", Date: "2024-01-01"})
	require.Error(t, err)

	assert.Empty(t, s.List(context.Background(), expense.ListFilter{}))
}
