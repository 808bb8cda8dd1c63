package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelinec/deckwright/internal/deck"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storedDeck(title string) deck.Deck {
	return deck.Deck{
		PresentationTitle: title,
		SlidesCount:       2,
		Theme:             deck.Theme{BackgroundColor: "#ffffff", TextColor: "#202124", AccentColor: "#1a73e8"},
		Slides: []deck.Slide{
			{Layout: deck.LayoutTitleAndBody, Title: "Intro", Bullets: []string{"a", "b"}},
			{Layout: deck.LayoutQuote, Quote: "said someone"},
		},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	rec, err := s.Save(storedDeck("Tides"))
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "Tides", rec.Title)
	require.Equal(t, 2, rec.Slides)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, storedDeck("Tides"), got.Deck)
	require.Equal(t, rec.CreatedAt, got.CreatedAt)
}

func TestGetMissingDeck(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesBody(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	rec, err := s.Save(storedDeck("Before"))
	require.NoError(t, err)

	edited := storedDeck("After")
	edited.Slides = edited.Slides[:1]
	edited.SlidesCount = 1

	updated, err := s.Update(rec.ID, edited)
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, 1, updated.Slides)
	require.Equal(t, edited, updated.Deck)
}

func TestUpdateMissingDeck(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Update("nope", storedDeck("X"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListOmitsBodies(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	first, err := s.Save(storedDeck("One"))
	require.NoError(t, err)
	second, err := s.Save(storedDeck("Two"))
	require.NoError(t, err)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []string{list[0].ID, list[1].ID}
	require.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	rec, err := s.Save(storedDeck("Doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(rec.ID))
	_, err = s.Get(rec.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(rec.ID), ErrNotFound)
}

func TestIDsAreUnique(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		rec, err := s.Save(storedDeck("N"))
		require.NoError(t, err)
		_, dup := seen[rec.ID]
		require.False(t, dup)
		seen[rec.ID] = struct{}{}
	}
}
