package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/bodul/xwplayer/puzzle"
)

const (
	cellWidth = 3
	gridTop   = 2
	gridLeft  = 1
)

var (
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlack   = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	styleOpen    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleInFocus = tcell.StyleDefault.Background(tcell.ColorLightBlue).Foreground(tcell.ColorBlack)
	styleFocused = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// drawText writes s at (x, y), clipped to width columns. It returns the number
// of columns used.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	if width <= 0 {
		return 0
	}
	s = runewidth.Truncate(s, width, "…")
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}

// cellX returns the screen column of grid column c. Right-to-left scripts are
// laid out mirrored.
func cellX(c, size int, rtl bool) int {
	if rtl {
		c = size - 1 - c
	}
	return gridLeft + c*cellWidth
}

func cellStyle(cell puzzle.Cell) tcell.Style {
	switch {
	case cell.Black:
		return styleBlack
	case cell.Focused:
		return styleFocused
	case cell.InFocus:
		return styleInFocus
	}
	return styleOpen
}

func drawGrid(screen tcell.Screen, s puzzle.Session) {
	for r, row := range s.Grid.Cells {
		for c, cell := range row {
			x, y := cellX(c, s.Grid.Size, s.Alphabet.RTL), gridTop+r
			style := cellStyle(cell)
			if !cell.Black {
				switch {
				case cell.Revealed:
					style = style.Foreground(tcell.ColorPurple)
				case cell.Correct:
					style = style.Foreground(tcell.ColorDarkGreen)
				}
			}
			for i := range cellWidth {
				screen.SetContent(x+i, y, ' ', nil, style)
			}
			if cell.User != "" {
				drawText(screen, x+1, y, 1, cell.User, style)
			}
		}
	}
}

func drawClues(screen tcell.Screen, x, y, width, height int, s puzzle.Session) {
	across, down := puzzle.SplitClues(s.Clues)
	current, hasCurrent := s.CurrentClue()

	line := 0
	section := func(title string, clues []puzzle.Clue) {
		if line >= height {
			return
		}
		drawText(screen, x, y+line, width, title, styleTitle)
		line++
		for _, c := range clues {
			if line >= height {
				return
			}
			style := styleText
			if hasCurrent && c.Number == current.Number && c.Direction == current.Direction {
				style = styleInFocus
			}
			drawText(screen, x, y+line, width, fmt.Sprintf("%2d. %s (%d)", c.Number, c.Text, c.Length), style)
			line++
		}
		line++
	}
	section("Horizontalement", across)
	section("Verticalement", down)
}

// draw renders the whole session. msg is an optional status line.
func draw(screen tcell.Screen, s puzzle.Session, msg string) {
	screen.Clear()
	width, height := screen.Size()

	header := fmt.Sprintf("%s  ⏱ %s  Score %d", s.Title, puzzle.FormatElapsed(s.Elapsed), s.Score)
	drawText(screen, gridLeft, 0, width-gridLeft, header, styleTitle)

	switch s.Status {
	case puzzle.StatusIdle:
		drawText(screen, gridLeft, gridTop, width-gridLeft, "Aucune grille. F5 pour en charger une, Échap pour quitter.", styleDim)
	case puzzle.StatusLoading:
		drawText(screen, gridLeft, gridTop, width-gridLeft, fmt.Sprintf("Génération d'une grille (%s)…", s.Difficulty), styleDim)
	default:
		drawGrid(screen, s)
		cluesLeft := gridLeft + s.Grid.Size*cellWidth + 2
		drawClues(screen, cluesLeft, gridTop, width-cluesLeft, height-gridTop-2, s)
		if c, ok := s.CurrentClue(); ok {
			drawText(screen, gridLeft, gridTop+s.Grid.Size+1, cluesLeft-gridLeft-1,
				fmt.Sprintf("%d %s", c.Number, directionLabel(c.Direction)), styleDim)
		}
	}

	if s.Status == puzzle.StatusWon {
		msg = fmt.Sprintf("Bravo ! Grille résolue en %s, score %d. F5 pour continuer.", puzzle.FormatElapsed(s.Elapsed), s.Score)
		drawText(screen, gridLeft, height-2, width-gridLeft, msg, styleWon)
	} else if msg != "" {
		drawText(screen, gridLeft, height-2, width-gridLeft, msg, styleCorrect)
	}
	drawText(screen, gridLeft, height-1, width-gridLeft,
		"Flèches: déplacer  Tab: sens  Entrée: vérifier  F2: lettre  F3: mot  F5: nouvelle grille  Échap: quitter", styleDim)

	screen.Show()
}

func directionLabel(d puzzle.Direction) string {
	if d == puzzle.Down {
		return "vertical"
	}
	return "horizontal"
}
