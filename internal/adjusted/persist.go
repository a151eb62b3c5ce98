package adjusted

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// SaveMatchupsCSV writes the season matchup table (stage one artifact) to
// disk: window identity, both performance vectors, possessions, margin,
// outcome and the signed indicator columns headed by player identifier.
func SaveMatchupsCSV(table []Matchup, pool []string, outputPath string) error {
	if len(table) == 0 {
		return fmt.Errorf("no matchup rows to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"game", "starting_min", "end_min"}
	for i := 0; i < LineupSize; i++ {
		header = append(header, fmt.Sprintf("home_%d", i))
	}
	for i := 0; i < LineupSize; i++ {
		header = append(header, fmt.Sprintf("visitor_%d", i))
	}
	header = append(header,
		"pts_home", "fga_home", "fgm_home", "fta_home", "oreb_home", "dreb_home", "to_home",
		"pts_visitor", "fga_visitor", "fgm_visitor", "fta_visitor", "oreb_visitor", "dreb_visitor", "to_visitor",
		"poss_home", "poss_visitor", "margin", "outcome",
	)
	header = append(header, pool...)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, m := range table {
		record := []string{
			m.Game,
			formatFloat(m.StartingMin, 2),
			formatFloat(m.EndMin, 2),
		}
		record = append(record, m.HomeLineup...)
		record = append(record, m.AwayLineup...)
		record = append(record,
			formatFloat(m.HomePerf.Points, 0),
			formatFloat(m.HomePerf.FGA, 0),
			formatFloat(m.HomePerf.FGM, 0),
			formatFloat(m.HomePerf.FTA, 0),
			formatFloat(m.HomePerf.OREB, 0),
			formatFloat(m.HomePerf.DREB, 0),
			formatFloat(m.HomePerf.Turnover, 0),
			formatFloat(m.VisitorPerf.Points, 0),
			formatFloat(m.VisitorPerf.FGA, 0),
			formatFloat(m.VisitorPerf.FGM, 0),
			formatFloat(m.VisitorPerf.FTA, 0),
			formatFloat(m.VisitorPerf.OREB, 0),
			formatFloat(m.VisitorPerf.DREB, 0),
			formatFloat(m.VisitorPerf.Turnover, 0),
			formatFloat(m.PossHome, 4),
			formatFloat(m.PossVisitor, 4),
			formatFloat(m.Margin, 4),
			strconv.Itoa(m.Outcome),
		)
		for _, v := range m.Indicators {
			record = append(record, strconv.Itoa(int(v)))
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record for game %s: %w", m.Game, err)
		}
	}

	return nil
}

// SaveRatedCSV writes the rated matchup table (stage two artifact). Slots
// whose player had no rating leave the apm cell empty, stating the
// omission explicitly rather than inventing a zero.
func SaveRatedCSV(rated []RatedMatchup, outputPath string) error {
	if len(rated) == 0 {
		return fmt.Errorf("no rated rows to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"game"}
	for i := 0; i < LineupSize; i++ {
		header = append(header, fmt.Sprintf("home_%d", i), fmt.Sprintf("home_%d_apm", i))
	}
	for i := 0; i < LineupSize; i++ {
		header = append(header, fmt.Sprintf("visitor_%d", i), fmt.Sprintf("visitor_%d_apm", i))
	}
	header = append(header, "lineup_apm", "outcome")

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range rated {
		record := []string{r.Game}
		for i := 0; i < LineupSize; i++ {
			record = append(record, r.Home[i].Player, formatSlot(r.Home[i]))
		}
		for i := 0; i < LineupSize; i++ {
			record = append(record, r.Visitor[i].Player, formatSlot(r.Visitor[i]))
		}
		record = append(record, formatFloat(r.LineupAPM, 6), strconv.Itoa(r.Outcome))

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record for game %s: %w", r.Game, err)
		}
	}

	return nil
}

// SaveRatingSummary writes a plain-text report of the season rating table,
// ordered from highest to lowest adjusted rating.
func SaveRatingSummary(ratings PlayerRatings, outputPath string) error {
	if len(ratings) == 0 {
		return fmt.Errorf("no ratings to summarize")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	players := make([]string, 0, len(ratings))
	for p := range ratings {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if ratings[players[i]] == ratings[players[j]] {
			return players[i] < players[j]
		}
		return ratings[players[i]] > ratings[players[j]]
	})

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "ADJUSTED PLAYER RATINGS (%d players)\n", len(players))
	fmt.Fprintf(file, "=====================================\n\n")
	fmt.Fprintf(file, "%-4s %-30s %10s\n", "Rank", "Player", "APM")
	for i, p := range players {
		fmt.Fprintf(file, "%-4d %-30s %10.4f\n", i+1, p, ratings[p])
	}

	return nil
}

func formatSlot(s SlotRating) string {
	if !s.Rated {
		return ""
	}
	return formatFloat(s.APM, 6)
}

// formatFloat renders a float for CSV output, keeping NaN readable.
func formatFloat(v float64, precision int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
