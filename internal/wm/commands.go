package wm

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/dwn/internal/config"
)

// Arg is the argument of a command. Which field is meaningful depends on the
// command's ArgKind.
type Arg struct {
	I  int
	UI uint32
	F  float64
	V  []string
	S  string
}

// ArgKind tells parseArg how to read the textual arguments of a binding.
type ArgKind int

const (
	// ArgNone takes no arguments.
	ArgNone ArgKind = iota
	// ArgInt reads one signed integer into I, default 0.
	ArgInt
	// ArgTags reads a tag list into UI: "all", "3" or "1,3". No argument
	// means 0, which bar clicks replace with the clicked tag.
	ArgTags
	// ArgFloat reads one float into F.
	ArgFloat
	// ArgList keeps the arguments verbatim in V.
	ArgList
	// ArgLayout reads a layout name into I. No argument means -1.
	ArgLayout
	// ArgScratch reads a scratchpad name or index into I.
	ArgScratch
	// ArgGeometry reads a moveresize spec such as "0x 25y 0w 0h" into S.
	ArgGeometry
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgTags:
		return "tags"
	case ArgFloat:
		return "float"
	case ArgList:
		return "list"
	case ArgLayout:
		return "layout"
	case ArgScratch:
		return "scratchpad"
	case ArgGeometry:
		return "geometry"
	default:
		return "none"
	}
}

// Command is one entry of the command table.
type Command struct {
	Run func(*State, Arg)
	Arg ArgKind
}

// Commands maps every bindable name to its command.
var Commands = map[string]Command{
	"spawn":         {(*State).spawnCmd, ArgList},
	"killclient":    {(*State).killClient, ArgNone},
	"killpermanent": {(*State).killPermanent, ArgNone},
	"killunsel":     {(*State).killUnsel, ArgNone},
	"killontag":     {(*State).killOnTag, ArgTags},
	"quit":          {(*State).quit, ArgInt},

	"togglevacant":    {(*State).toggleVacant, ArgNone},
	"togglebar":       {(*State).toggleBar, ArgNone},
	"toggletopbar":    {(*State).toggleTopBar, ArgNone},
	"togglepadding":   {(*State).togglePadding, ArgNone},
	"setmfact":        {(*State).setMFact, ArgFloat},
	"setcfact":        {(*State).setCFact, ArgFloat},
	"incnmaster":      {(*State).incNMaster, ArgInt},
	"resetnmaster":    {(*State).resetNMaster, ArgNone},
	"setlayout":       {(*State).setLayoutCmd, ArgLayout},
	"setlayoutex":     {(*State).setLayoutCmd, ArgInt},
	"cyclelayout":     {(*State).cycleLayout, ArgInt},
	"incrgaps":        {(*State).incrGaps, ArgInt},
	"incrigaps":       {(*State).incrIGaps, ArgInt},
	"incrogaps":       {(*State).incrOGaps, ArgInt},
	"incrihgaps":      {(*State).incrIHGaps, ArgInt},
	"incrivgaps":      {(*State).incrIVGaps, ArgInt},
	"incrohgaps":      {(*State).incrOHGaps, ArgInt},
	"incrovgaps":      {(*State).incrOVGaps, ArgInt},
	"togglegaps":      {(*State).toggleGaps, ArgNone},
	"togglesmartgaps": {(*State).toggleSmartGaps, ArgNone},
	"defaultgaps":     {(*State).defaultGaps, ArgNone},
	"setborderpx":     {(*State).setBorderPx, ArgInt},

	"focusmaster":          {(*State).focusMaster, ArgNone},
	"switchcol":            {(*State).switchCol, ArgNone},
	"focusdir":             {func(s *State, a Arg) { s.focusDir(a.I) }, ArgInt},
	"focusstack":           {func(s *State, a Arg) { s.focusStack(a.I) }, ArgInt},
	"focuswin":             {(*State).focusWin, ArgInt},
	"activate":             {(*State).activate, ArgInt},
	"inplacerotate":        {(*State).inplaceRotate, ArgInt},
	"zoom":                 {(*State).zoom, ArgNone},
	"transfer":             {(*State).transfer, ArgNone},
	"pushdown":             {(*State).pushDown, ArgNone},
	"pushup":               {(*State).pushUp, ArgNone},
	"togglefloating":       {(*State).toggleFloating, ArgNone},
	"unfloatvisible":       {(*State).unfloatVisible, ArgLayout},
	"togglesticky":         {(*State).toggleSticky, ArgNone},
	"togglefullscr":        {(*State).toggleFullscreen, ArgNone},
	"togglefakefullscreen": {(*State).toggleFakeFullscreen, ArgNone},
	"togglescratch":        {(*State).toggleScratch, ArgScratch},
	"setscratch":           {(*State).setScratch, ArgScratch},
	"removescratch":        {(*State).removeScratch, ArgNone},
	"moveresize":           {(*State).moveResize, ArgGeometry},
	"movecenter":           {(*State).moveCenter, ArgNone},
	"movemouse":            {(*State).moveMouse, ArgNone},
	"resizemouse":          {(*State).resizeMouse, ArgNone},

	"focusmon":     {func(s *State, a Arg) { s.focusMon(a.I) }, ArgInt},
	"tagmon":       {(*State).tagMon, ArgInt},
	"focusnextmon": {func(s *State, a Arg) { s.focusOtherMon(a.UI, 1) }, ArgTags},
	"focusprevmon": {func(s *State, a Arg) { s.focusOtherMon(a.UI, -1) }, ArgTags},
	"tagnextmon":   {func(s *State, a Arg) { s.tagOtherMon(a.UI, 1) }, ArgTags},
	"tagprevmon":   {func(s *State, a Arg) { s.tagOtherMon(a.UI, -1) }, ArgTags},

	"view":             {func(s *State, a Arg) { s.view(a.UI) }, ArgTags},
	"toggleview":       {func(s *State, a Arg) { s.toggleView(a.UI) }, ArgTags},
	"tag":              {func(s *State, a Arg) { s.tag(a.UI) }, ArgTags},
	"toggletag":        {func(s *State, a Arg) { s.toggleTag(a.UI) }, ArgTags},
	"tagwith":          {func(s *State, a Arg) { s.tagWith(a.UI) }, ArgTags},
	"swaptags":         {func(s *State, a Arg) { s.swapTags(a.UI) }, ArgTags},
	"comboview":        {func(s *State, a Arg) { s.comboView(a.UI) }, ArgTags},
	"combotag":         {func(s *State, a Arg) { s.comboTag(a.UI) }, ArgTags},
	"goback":           {(*State).goBack, ArgNone},
	"viewnext":         {func(s *State, _ Arg) { s.view(s.nextTag(false, false)) }, ArgNone},
	"viewprev":         {func(s *State, _ Arg) { s.view(s.nextTag(true, false)) }, ArgNone},
	"viewnextempty":    {func(s *State, _ Arg) { s.view(s.nextTag(false, true)) }, ArgNone},
	"viewprevempty":    {func(s *State, _ Arg) { s.view(s.nextTag(true, true)) }, ArgNone},
	"shiftviewclients": {(*State).shiftViewClients, ArgInt},
	"winview":          {(*State).winView, ArgNone},
	"reorganizetags":   {(*State).reorganizeTags, ArgNone},

	"viewex":       {func(s *State, a Arg) { s.view(indexTag(a.I)) }, ArgInt},
	"toggleviewex": {func(s *State, a Arg) { s.toggleView(indexTag(a.I)) }, ArgInt},
	"tagex":        {func(s *State, a Arg) { s.tag(indexTag(a.I)) }, ArgInt},
	"toggletagex":  {func(s *State, a Arg) { s.toggleTag(indexTag(a.I)) }, ArgInt},
	"tagwithex":    {func(s *State, a Arg) { s.tagWith(indexTag(a.I)) }, ArgInt},
}

// indexTag turns a 0-based tag index into its mask.
func indexTag(i int) uint32 {
	if i < 0 || i >= 32 {
		return 0
	}
	return 1 << uint(i)
}

// CommandNames returns the command table keys, sorted.
func CommandNames() []string {
	out := make([]string, 0, len(Commands))
	for name := range Commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RunCommand parses args for the named command and runs it. It must be
// called on the goroutine that owns s.
func (s *State) RunCommand(name string, args []string) error {
	cmd, ok := Commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	arg, err := parseArg(s.cfg, cmd.Arg, args)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s.logger.Debug("running command", "command", name, "args", args)
	cmd.Run(s, arg)
	return nil
}

func parseArg(cfg *config.Config, kind ArgKind, args []string) (Arg, error) {
	one := func() (string, error) {
		switch len(args) {
		case 0:
			return "", nil
		case 1:
			return strings.TrimSpace(args[0]), nil
		default:
			return "", fmt.Errorf("expected one %s argument, got %d", kind, len(args))
		}
	}

	switch kind {
	case ArgNone:
		if len(args) > 0 {
			return Arg{}, fmt.Errorf("takes no arguments")
		}
		return Arg{}, nil
	case ArgList:
		if len(args) == 0 {
			return Arg{}, fmt.Errorf("command line must not be empty")
		}
		return Arg{V: append([]string(nil), args...)}, nil
	case ArgGeometry:
		spec := strings.Join(args, " ")
		if _, err := parseMoveResize(spec); err != nil {
			return Arg{}, err
		}
		return Arg{S: spec}, nil
	}

	v, err := one()
	if err != nil {
		return Arg{}, err
	}
	switch kind {
	case ArgInt:
		if v == "" {
			return Arg{}, nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return Arg{}, fmt.Errorf("invalid integer %q", v)
		}
		return Arg{I: i}, nil
	case ArgFloat:
		if v == "" {
			return Arg{}, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Arg{}, fmt.Errorf("invalid float %q", v)
		}
		return Arg{F: f}, nil
	case ArgTags:
		ui, err := ParseTags(v, len(cfg.Tags))
		if err != nil {
			return Arg{}, err
		}
		return Arg{UI: ui}, nil
	case ArgLayout:
		if v == "" {
			return Arg{I: -1}, nil
		}
		i, ok := cfg.LayoutIndex(v)
		if !ok {
			return Arg{}, fmt.Errorf("layout %q is not in layouts", v)
		}
		return Arg{I: i}, nil
	case ArgScratch:
		if i, ok := cfg.ScratchpadIndex(v); ok {
			return Arg{I: i}, nil
		}
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 || i >= len(cfg.Scratchpads) {
			return Arg{}, fmt.Errorf("unknown scratchpad %q", v)
		}
		return Arg{I: i}, nil
	}
	return Arg{}, fmt.Errorf("unknown argument kind %d", kind)
}

// ParseTags reads a tag list: "" is 0, "all" or "~0" is every bit, "3" is
// tag 3 and "1,3" is tags 1 and 3. Tags are 1-based.
func ParseTags(v string, ntags int) (uint32, error) {
	switch v {
	case "", "0":
		return 0, nil
	case "all", "~0":
		return ^uint32(0), nil
	}
	var mask uint32
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("invalid tag %q", part)
		}
		if n < 1 || n > ntags {
			return 0, fmt.Errorf("tag %d out of range 1..%d", n, ntags)
		}
		mask |= 1 << uint(n-1)
	}
	return mask, nil
}

// FormatTags is the inverse of ParseTags for masks within ntags.
func FormatTags(mask uint32, ntags int) string {
	all := uint32(1)<<uint(ntags) - 1
	if mask&all == all && ntags > 1 {
		return "all"
	}
	var parts []string
	for mask != 0 {
		i := bits.TrailingZeros32(mask)
		if i >= ntags {
			break
		}
		parts = append(parts, strconv.Itoa(i+1))
		mask &^= 1 << uint(i)
	}
	return strings.Join(parts, ",")
}

// geometry is a parsed moveresize spec. Abs marks fields given in upper
// case, which are absolute rather than relative.
type geometry struct {
	X, Y, W, H             int
	AbsX, AbsY, AbsW, AbsH bool
}

func parseMoveResize(spec string) (geometry, error) {
	fields := strings.Fields(spec)
	if len(fields) != 4 {
		return geometry{}, fmt.Errorf("moveresize wants \"<x>x <y>y <w>w <h>h\", got %q", spec)
	}
	var g geometry
	vals := []*int{&g.X, &g.Y, &g.W, &g.H}
	abs := []*bool{&g.AbsX, &g.AbsY, &g.AbsW, &g.AbsH}
	for i, f := range fields {
		suffix := f[len(f)-1]
		want := "xywh"[i]
		switch suffix {
		case want:
		case want - 'a' + 'A':
			*abs[i] = true
		default:
			return geometry{}, fmt.Errorf("field %q must end in %c or %c", f, want, want-'a'+'A')
		}
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil {
			return geometry{}, fmt.Errorf("invalid number in %q", f)
		}
		*vals[i] = n
	}
	return g, nil
}
