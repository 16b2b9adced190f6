package readinglists

import (
	"context"
	"fmt"
	"testing"

	"github.com/openshelf/openshelf/pkg/books"
	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *books.Service) {
	t.Helper()
	store := csvstore.New()
	dir := t.TempDir()
	bookService := books.NewService(store, dir, csvstore.Plain)
	return NewService(store, dir, bookService), bookService
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, 1, list.ID)
	assert.Empty(t, list.ISBNs)
	assert.False(t, list.IsPublic)

	// Duplicate names are checked per owner, case-insensitively.
	_, err = svc.Create(ctx, 1, "sci-fi")
	assert.ErrorIs(t, err, errcodes.Conflict("You already have a list with this name."))

	// Another owner can reuse the name.
	_, err = svc.Create(ctx, 2, "Sci-Fi")
	require.NoError(t, err)
}

func TestServiceCreate_Quota(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 1; i <= MaxListsPerUser; i++ {
		_, err := svc.Create(ctx, 1, fmt.Sprintf("List %d", i))
		require.NoError(t, err, "list %d should fit under the quota", i)
	}

	_, err := svc.Create(ctx, 1, "One Too Many")
	assert.ErrorIs(t, err, errcodes.QuotaExceeded("You cannot have more than 10 reading lists."))

	// The quota is per owner.
	_, err = svc.Create(ctx, 2, "First")
	require.NoError(t, err)
}

func TestServiceRename(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Fantasy")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, list.ID, 1, "Space Opera")
	require.NoError(t, err)
	assert.True(t, renamed)

	// Renaming to yourself is allowed; to a sibling's name is not.
	renamed, err = svc.Rename(ctx, list.ID, 1, "SPACE OPERA")
	require.NoError(t, err)
	assert.True(t, renamed)

	_, err = svc.Rename(ctx, list.ID, 1, "fantasy")
	assert.ErrorIs(t, err, errcodes.Conflict("You already have a list with this name."))

	// Wrong owner or missing list is false, not an error.
	renamed, err = svc.Rename(ctx, list.ID, 2, "Other")
	require.NoError(t, err)
	assert.False(t, renamed)
}

func TestServiceToggleVisibility(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)

	result, err := svc.ToggleVisibility(ctx, list.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsPublic)

	result, err = svc.ToggleVisibility(ctx, list.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsPublic)

	result, err = svc.ToggleVisibility(ctx, 99, 1)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestServiceAddRemoveBook(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)

	updated, err := svc.AddBook(ctx, list.ID, 1, "9780307245304")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780307245304"}, updated.ISBNs)

	// Re-adding is a conflict, not a no-op.
	_, err = svc.AddBook(ctx, list.ID, 1, "9780307245304")
	assert.ErrorIs(t, err, errcodes.Conflict("This book is already in the list."))

	updated, err = svc.AddBook(ctx, list.ID, 1, "0195153448")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780307245304", "0195153448"}, updated.ISBNs)

	updated, err = svc.RemoveBook(ctx, list.ID, 1, "9780307245304")
	require.NoError(t, err)
	assert.Equal(t, []string{"0195153448"}, updated.ISBNs)

	_, err = svc.RemoveBook(ctx, list.ID, 1, "9780307245304")
	assert.ErrorIs(t, err, errcodes.NotFound("Book in this list"))

	_, err = svc.AddBook(ctx, 99, 1, "9780307245304")
	assert.ErrorIs(t, err, errcodes.NotFound("Reading list"))
}

func TestServiceDelete_ResequencesAcrossOwners(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "First")
	require.NoError(t, err)
	second, err := svc.Create(ctx, 2, "Second")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Third")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, second.ID, 2)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Surviving ids are renumbered 1..N across every owner.
	mine, err := svc.ListForOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 1, mine[0].ID)
	assert.Equal(t, 2, mine[1].ID)

	// Wrong owner cannot delete.
	deleted, err = svc.Delete(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestServiceGetDetail(t *testing.T) {
	t.Parallel()

	svc, bookService := newTestService(t)
	ctx := context.Background()

	_, err := bookService.Create(ctx, books.CreateBookOptions{
		ISBN: "9780307245304", Title: "The Road", Author: "Cormac McCarthy",
	})
	require.NoError(t, err)

	list, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, list.ID, 1, "9780307245304")
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, list.ID, 1, "0000000000")
	require.NoError(t, err)

	detail, err := svc.GetDetail(ctx, list.ID, 1)
	require.NoError(t, err)
	require.Len(t, detail.Books, 2)
	assert.Equal(t, "The Road", detail.Books[0].Title)
	assert.Equal(t, "Cormac McCarthy", detail.Books[0].Author)

	// A dangling reference resolves to placeholders, never an error.
	assert.Equal(t, "0000000000", detail.Books[1].ISBN)
	assert.Equal(t, "Unknown Title", detail.Books[1].Title)
	assert.Equal(t, "Unknown Author", detail.Books[1].Author)

	// Ownership mismatch is invisible, not forbidden.
	_, err = svc.GetDetail(ctx, list.ID, 2)
	assert.ErrorIs(t, err, errcodes.NotFound("Reading list"))
}

func TestServicePublicLists(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, "Sci-Fi")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Private Stash")
	require.NoError(t, err)

	_, err = svc.AddBook(ctx, first.ID, 1, "9780307245304")
	require.NoError(t, err)
	_, err = svc.ToggleVisibility(ctx, first.ID, 1)
	require.NoError(t, err)

	summaries, err := svc.GetPublicForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Sci-Fi", summaries[0].Name)
	assert.Equal(t, 1, summaries[0].TotalBooks)

	none, err := svc.GetPublicForUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}
