//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"errors"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"time"
)

func buffered(level int, bw bool) (*MessageMaker, *bytes.Buffer) {
	var b bytes.Buffer
	m := NewMessageMaker("Test Lab", "TL", "0.0.1", level, bw)
	m.Win = false
	m.Out = &b
	return m, &b
}

func TestEmitRespectsLevel(t *testing.T) {
	m, b := buffered(MSGNOTE, true)
	m.CRIT("crit")
	m.WARN("warn")
	m.NOTE("note")
	m.FYI("fyi")
	m.TMI("tmi")
	assert.Equal(t, "[TL] crit\n[TL] warn\n[TL] note\n", b.String())
}

func TestMandatoryAlwaysShows(t *testing.T) {
	m, b := buffered(MSGMAND, true)
	m.MAND("must")
	m.CRIT("crit")
	assert.Equal(t, "[TL] must\n", b.String())
}

func TestSilentMessageMaker(t *testing.T) {
	m := NewSilentMessageMaker()
	var b bytes.Buffer
	m.Out = &b
	m.MAND("nothing")
	assert.Empty(t, b.String())
}

func TestColorAndStyleTags(t *testing.T) {
	m, _ := buffered(MSGTMI, true)
	assert.Equal(t, "[git: 1234]", m.ColStyle("[C4git: C41234C0]"))
	assert.Equal(t, "bold", m.Styled("S1boldS0"))

	m.BW = false
	c := m.Color("C1yellowC0")
	assert.True(t, strings.HasPrefix(c, YELLOW1))
	assert.True(t, strings.HasSuffix(c, RESET))
}

func TestColoredEmit(t *testing.T) {
	m, b := buffered(MSGWARN, false)
	m.WARN("careful")
	assert.Contains(t, b.String(), YELLOW2+"careful"+RESET)
	assert.Contains(t, b.String(), "TL")
}

func TestEC(t *testing.T) {
	m, b := buffered(MSGCRIT, true)
	m.EC(nil, "fine()")
	assert.Empty(t, b.String())
	m.EC(errors.New("boom"), "broken()")
	assert.Contains(t, b.String(), "(broken()) UNRECOVERABLE ERROR")
	assert.Contains(t, b.String(), "boom")
}

func TestTimer(t *testing.T) {
	m, b := buffered(TIMETRACKERMSGTHRESH, true)
	start := time.Now()
	m.Timer("A1", "tokenized", start, start)
	assert.Regexp(t, `^\[TL\] \[A1: \d+\.\d{3}s\]\[Δ: \d+\.\d{3}s\] tokenized\n$`, b.String())
}

func TestN(t *testing.T) {
	m, _ := buffered(MSGNOTE, true)
	assert.Equal(t, "49,510", m.N(49510))
	assert.Equal(t, "7", m.N(7))

	var none *MessageMaker
	assert.Equal(t, "1234", none.N(1234))
}
