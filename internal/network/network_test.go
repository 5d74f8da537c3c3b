// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// sampleData is the three-line network shipped in data/network.yml.
func sampleData() *models.NetworkData {
	return &models.NetworkData{
		Stations: []models.Station{
			{ID: "1", Name: "Central Station", Lines: []string{"1"}},
			{ID: "2", Name: "North Square", Lines: []string{"1"}},
			{ID: "3", Name: "City Hall", Lines: []string{"1", "3"}},
			{ID: "4", Name: "Market Place", Lines: []string{"1", "2"}},
			{ID: "5", Name: "Harbour", Lines: []string{"1"}},
			{ID: "6", Name: "Airport", Lines: []string{"1"}},
			{ID: "7", Name: "University", Lines: []string{"2"}},
			{ID: "8", Name: "Museum", Lines: []string{"2"}},
			{ID: "9", Name: "Library", Lines: []string{"3"}},
			{ID: "10", Name: "Park", Lines: []string{"2"}},
			{ID: "11", Name: "Stadium", Lines: []string{"2", "3"}},
			{ID: "12", Name: "Beach", Lines: []string{"3"}},
		},
		Lines: []models.Line{
			{ID: "1", Name: "Red Line", Color: "#E53935", Stations: []string{"6", "1", "2", "3", "4", "5"}},
			{ID: "2", Name: "Green Line", Color: "#43A047", Stations: []string{"7", "8", "4", "10", "11"}},
			{ID: "3", Name: "Blue Line", Color: "#1E88E5", Stations: []string{"3", "9", "11", "12"}},
		},
	}
}

func sampleNetwork(t *testing.T) *Network {
	t.Helper()
	n, err := Build(sampleData())
	require.NoError(t, err)
	return n
}

func TestBuild(t *testing.T) {
	t.Run("sample network builds", func(t *testing.T) {
		n := sampleNetwork(t)

		stats := n.Stats()
		assert.Equal(t, 12, stats.TotalStations)
		assert.Equal(t, 3, stats.TotalLines)
		assert.Equal(t, 3, stats.InterchangeStations)
		assert.Equal(t, 12, stats.TotalConnections)
	})

	t.Run("consecutive stations become bidirectional edges", func(t *testing.T) {
		n := sampleNetwork(t)

		edges, err := n.Neighbours("4")
		require.NoError(t, err)

		assert.Equal(t, []models.Edge{
			{Source: "4", Target: "10", Line: "2"},
			{Source: "4", Target: "3", Line: "1"},
			{Source: "4", Target: "5", Line: "1"},
			{Source: "4", Target: "8", Line: "2"},
		}, edges)
	})

	t.Run("nil data is malformed", func(t *testing.T) {
		_, err := Build(nil)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
	})

	t.Run("line referencing unknown station is malformed", func(t *testing.T) {
		data := sampleData()
		data.Lines[0].Stations = append(data.Lines[0].Stations, "99")

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
		assert.Contains(t, err.Error(), `unknown station "99"`)
	})

	t.Run("line with a single station is malformed", func(t *testing.T) {
		data := sampleData()
		data.Lines = append(data.Lines, models.Line{ID: "4", Name: "Stub Line", Stations: []string{"5"}})

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
		assert.Contains(t, err.Error(), "at least 2")
	})

	t.Run("empty line is malformed", func(t *testing.T) {
		data := sampleData()
		data.Lines = append(data.Lines, models.Line{ID: "4", Name: "Ghost Line"})

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
	})

	t.Run("station repeated on a line is malformed", func(t *testing.T) {
		data := sampleData()
		data.Lines[2].Stations = []string{"3", "9", "3"}

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
		assert.Contains(t, err.Error(), "appears twice")
	})

	t.Run("duplicate station id is malformed", func(t *testing.T) {
		data := sampleData()
		data.Stations = append(data.Stations, models.Station{ID: "1", Name: "Other Central"})

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
	})

	t.Run("duplicate line id is malformed", func(t *testing.T) {
		data := sampleData()
		data.Lines = append(data.Lines, models.Line{ID: "1", Name: "Red Line Again", Stations: []string{"1", "2"}})

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
	})

	t.Run("station declaring unknown line is malformed", func(t *testing.T) {
		data := sampleData()
		data.Stations[0].Lines = []string{"1", "42"}

		_, err := Build(data)
		assert.ErrorIs(t, err, ErrMalformedNetwork)
	})

	t.Run("negative fare policy is rejected", func(t *testing.T) {
		_, err := Build(sampleData(), WithFarePolicy(FarePolicy{Base: -1, PerStation: 1}))
		assert.ErrorIs(t, err, ErrInvalidFare)
	})

	t.Run("build does not alias input slices", func(t *testing.T) {
		data := sampleData()
		n, err := Build(data)
		require.NoError(t, err)

		data.Lines[0].Stations[0] = "12"

		line, ok := n.Line("1")
		require.True(t, ok)
		assert.Equal(t, "6", line.Stations[0])
	})
}

func TestInterchanges(t *testing.T) {
	t.Run("stations on two or more lines are interchanges", func(t *testing.T) {
		n := sampleNetwork(t)

		var ids []string
		for _, st := range n.Interchanges() {
			ids = append(ids, st.ID)
		}

		assert.Equal(t, []string{"11", "3", "4"}, ids)
	})

	t.Run("membership is derived from line orderings", func(t *testing.T) {
		data := sampleData()
		for i := range data.Stations {
			data.Stations[i].Lines = nil
		}

		n, err := Build(data)
		require.NoError(t, err)

		st, ok := n.Station("4")
		require.True(t, ok)
		assert.Equal(t, []string{"1", "2"}, st.Lines)
		assert.True(t, st.Interchange)

		st, ok = n.Station("1")
		require.True(t, ok)
		assert.False(t, st.Interchange)
	})
}

func TestQueries(t *testing.T) {
	n := sampleNetwork(t)

	t.Run("stations are ordered by id", func(t *testing.T) {
		stations := n.Stations()

		require.Len(t, stations, 12)
		assert.Equal(t, "1", stations[0].ID)
		assert.Equal(t, "10", stations[1].ID)
	})

	t.Run("lines are ordered by id", func(t *testing.T) {
		lines := n.Lines()

		require.Len(t, lines, 3)
		assert.Equal(t, "Red Line", lines[0].Name)
		assert.Equal(t, "Blue Line", lines[2].Name)
	})

	t.Run("station lookup by name ignores case", func(t *testing.T) {
		st, ok := n.StationByName("  market place ")

		require.True(t, ok)
		assert.Equal(t, "4", st.ID)

		_, ok = n.StationByName("Nowhere")
		assert.False(t, ok)
	})

	t.Run("stations on line keep line order", func(t *testing.T) {
		stations, ok := n.StationsOnLine("3")

		require.True(t, ok)
		var names []string
		for _, st := range stations {
			names = append(names, st.Name)
		}
		assert.Equal(t, []string{"City Hall", "Library", "Stadium", "Beach"}, names)

		_, ok = n.StationsOnLine("9")
		assert.False(t, ok)
	})

	t.Run("neighbours of unknown station fail", func(t *testing.T) {
		_, err := n.Neighbours("99")
		assert.ErrorIs(t, err, ErrUnknownStation)
	})

	t.Run("returned stations are copies", func(t *testing.T) {
		st, _ := n.Station("3")
		st.Lines[0] = "mutated"

		again, _ := n.Station("3")
		assert.Equal(t, "1", again.Lines[0])
	})

	t.Run("validate path", func(t *testing.T) {
		assert.True(t, n.ValidatePath([]string{"1", "2", "3", "4", "10"}))
		assert.True(t, n.ValidatePath([]string{"7"}))
		assert.False(t, n.ValidatePath([]string{"1", "3"}))
		assert.False(t, n.ValidatePath([]string{"1", "99"}))
		assert.False(t, n.ValidatePath(nil))
	})
}
