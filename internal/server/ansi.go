package server

import (
	"strconv"
	"strings"

	"github.com/Faultbox/globe/internal/engine/canvas"
)

const csi = "\x1b["

const (
	enterScreen = csi + "?1049h" + csi + "?25l" + csi + "2J"
	leaveScreen = csi + "?25h" + csi + "?1049l"
	clearScreen = csi + "2J"
)

// moveTo positions the cursor at a 1-based row and column.
func moveTo(sb *strings.Builder, row, col int) {
	sb.WriteString(csi)
	sb.WriteString(strconv.Itoa(row))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(col))
	sb.WriteByte('H')
}

// encodeFrame writes every canvas row at its screen position, with the
// canvas' top-left cell at the 0-based offset.
func encodeFrame(sb *strings.Builder, cv *canvas.Canvas, offX, offY int) {
	for row := 0; row < cv.Height(); row++ {
		moveTo(sb, offY+row+1, offX+1)
		sb.WriteString(cv.Row(row))
	}
}
