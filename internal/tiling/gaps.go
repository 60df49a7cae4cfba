package tiling

// gaps returns the effective outer and inner gaps for n tiled clients.
func gaps(p Params, n int) (oh, ov, ih, iv int) {
	oe, ie := 0, 0
	if p.Gaps.Enabled {
		oe, ie = 1, 1
	}
	if p.Gaps.Smart && n == 1 {
		oe = 0
	}
	return p.Gaps.OuterH * oe, p.Gaps.OuterV * oe, p.Gaps.InnerH * ie, p.Gaps.InnerV * ie
}

// facts sums the cfacts of the master and stack areas and returns the pixels
// left over after splitting msize and ssize by those weights. The leftovers
// are handed out one pixel per client from the top.
func facts(tiles []Tile, nmaster, msize, ssize int) (mfacts, sfacts float64, mrest, srest int) {
	for i, t := range tiles {
		if i < nmaster {
			mfacts += t.CFact
		} else {
			sfacts += t.CFact
		}
	}
	mtotal, stotal := 0, 0
	for i, t := range tiles {
		if i < nmaster {
			mtotal = int(float64(mtotal) + float64(msize)*(t.CFact/mfacts))
		} else {
			stotal = int(float64(stotal) + float64(ssize)*(t.CFact/sfacts))
		}
	}
	return mfacts, sfacts, msize - mtotal, ssize - stotal
}

// share is one client's slice of size along a column weighted by cfact.
func share(size int, total, cfact float64, extra bool, border int) int {
	v := int(float64(size) / total * cfact)
	if extra {
		v++
	}
	return v - 2*border
}
