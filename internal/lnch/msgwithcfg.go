//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/HipparchiaTextLab/internal/db"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/pipe"
	"github.com/e-gun/HipparchiaTextLab/internal/stm"
	"github.com/e-gun/HipparchiaTextLab/internal/stops"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"io"
)

func NewMessageMakerConfigured(cfg *str.CurrentConfiguration, w io.Writer) *mm.MessageMaker {
	m := mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION+VersSuppl, cfg.LogLevel, cfg.BlackAndWhite)
	if w != nil {
		m.Out = w
	}
	return m
}

// UpdateMessageMakerWithConfig - one MessageMaker, shared by every package that talks
func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	Msg = m
	db.Msg = m
	tok.Msg = m
	stops.Msg = m
	dfm.Msg = m
	dict.Msg = m
	stm.Msg = m
	pipe.Msg = m
}
