package config

import "strconv"

const wtype = "_NET_WM_WINDOW_TYPE_"

func defaultScratchpads() []Scratchpad {
	return []Scratchpad{
		{Name: "spterm", Command: []string{"st", "-c", "spterm", "-t", "stSCP", "-g", "144x41"}},
		{Name: "spmus", Command: []string{"st", "-c", "spmus", "-t", "cmusSCP", "-g", "144x41", "-e", "cmus"}},
		{Name: "spcal", Command: []string{"qalculate-gtk", "--title", "spcal"}},
	}
}

func defaultRules() []Rule {
	return []Rule{
		{Class: "spterm", Scratchpad: "spterm", Floating: true},
		{Class: "spmus", Scratchpad: "spmus", Floating: true},
		{Title: "spcal", Scratchpad: "spcal", Floating: true},

		{Class: "St", Terminal: true},
		{Class: "Alacritty", Terminal: true},
		{Class: "XTerm", Terminal: true},

		{Instance: "Navigator", Tags: []int{1}, SwitchTag: 1, Permanent: true, NoSwallow: true},
		{Instance: "chromium", Tags: []int{4}, SwitchTag: 1, Permanent: true, NoSwallow: true},
		{Title: "Event Tester", NoSwallow: true},
		{Class: "Xephyr", Floating: true, NoSwallow: true},
		{Class: "Gimp", Tags: []int{9}, SwitchTag: 3, Floating: true, NoSwallow: true},
		{Title: "glxgears", Floating: true, NoSwallow: true},

		{WindowType: wtype + "DIALOG", Floating: true},
		{WindowType: wtype + "UTILITY", Floating: true},
		{WindowType: wtype + "TOOLBAR", Floating: true},
		{WindowType: wtype + "SPLASH", Floating: true},
	}
}

func key(cmd string, args []string, keys ...string) KeyBinding {
	return KeyBinding{Keys: keys, Command: cmd, Args: args}
}

func sh(cmd string) []string {
	return []string{"/bin/sh", "-c", cmd}
}

func arg(v string) []string {
	return []string{v}
}

func defaultKeys() []KeyBinding {
	return append(baseKeys(), tagKeys(9)...)
}

// fitBuiltins trims the built-in rules and per-tag keys to the configured
// tag list. Tables a config file sets are left alone.
func (c *Config) fitBuiltins(sources map[string]Source) {
	n := len(c.Tags)
	if _, ok := sources["rules"]; !ok {
		for i := range c.Rules {
			r := &c.Rules[i]
			var tags []int
			for _, t := range r.Tags {
				if t <= n {
					tags = append(tags, t)
				}
			}
			if len(tags) == 0 {
				r.SwitchTag = 0
			}
			r.Tags = tags
		}
	}
	if _, ok := sources["keys"]; !ok {
		c.Keys = append(baseKeys(), tagKeys(min(n, 9))...)
	}
}

func baseKeys() []KeyBinding {
	return []KeyBinding{
		key("spawn", sh("$TERMINAL"), "Mod1-Return"),
		key("spawn", sh("$TERMINAL htop"), "Mod1-Shift-c"),
		key("spawn", sh("playerctl play-pause"), "Mod1-Shift-z"),
		key("spawn", sh("$TERMINAL $EDITOR"), "Mod1-Shift-e"),
		key("spawn", sh("emacsclient -c -a emacs"), "Mod1-e", "e"),
		key("spawn", sh("emacsclient -c -e '(ibuffer)'"), "Mod1-e", "c"),
		key("spawn", sh("emacsclient -c -e '(dired nil)'"), "Mod1-e", "d"),
		key("spawn", sh("emacsclient -c -e '(elfeed)'"), "Mod1-e", "f"),
		key("spawn", sh("dmenu_run -l 5 -g 10 -p 'Run:'"), "Mod1-Shift-Return"),
		key("spawn", sh("slock"), "Mod4-Control-Mod1-l"),
		key("spawn", sh("xkill"), "Mod1-Control-KP_Down"),
		key("spawn", sh("playerctl --player cmus previous"), "XF86AudioPrev"),
		key("spawn", sh("playerctl --player cmus next"), "XF86AudioNext"),
		key("spawn", sh("playerctl --player cmus play-pause"), "XF86AudioPlay"),
		key("spawn", sh("pamixer --allow-boost -d 1"), "XF86AudioLowerVolume"),
		key("spawn", sh("pamixer --allow-boost -i 1"), "XF86AudioRaiseVolume"),

		key("killclient", nil, "Mod1-q"),
		key("killpermanent", nil, "Mod1-Control-Shift-x"),
		key("killunsel", nil, "Mod1-Shift-q"),
		key("togglevacant", nil, "Mod4-Shift-v"),
		key("togglebar", nil, "Mod1-n"),
		key("reorganizetags", nil, "Mod1-r"),
		key("setmfact", arg("-0.05"), "Mod1-Shift-h"),
		key("setmfact", arg("+0.05"), "Mod1-Shift-l"),
		key("setcfact", arg("+0.25"), "Mod1-Shift-j"),
		key("setcfact", arg("-0.25"), "Mod1-Shift-k"),
		key("setcfact", arg("0"), "Mod1-Control-u"),
		key("incnmaster", arg("+1"), "Mod1-bracketleft"),
		key("incnmaster", arg("-1"), "Mod1-bracketright"),
		key("focusmaster", nil, "Mod4-space"),
		key("switchcol", nil, "Mod1-Control-space"),
		key("focusdir", arg("0"), "Mod1-h"),
		key("focusdir", arg("1"), "Mod1-l"),
		key("focusdir", arg("2"), "Mod1-k"),
		key("focusdir", arg("3"), "Mod1-j"),
		key("focusstack", arg("+1"), "Mod4-Shift-j"),
		key("focusstack", arg("-1"), "Mod4-Shift-k"),
		key("inplacerotate", arg("+2"), "Mod4-Control-j"),
		key("inplacerotate", arg("-2"), "Mod4-Control-k"),

		key("setlayout", arg("tile"), "Mod1-t"),
		key("setlayout", arg("spiral"), "Mod1-v"),
		key("setlayout", arg("floating"), "Mod1-Shift-f"),
		key("setlayout", arg("deck"), "Mod1-d"),
		key("setlayout", arg("nrowgrid"), "Mod1-g"),
		key("setlayout", arg("bstack"), "Mod1-b"),
		key("setlayout", arg("centeredmaster"), "Mod1-Shift-m"),
		key("setlayout", arg("monocle"), "Mod1-m"),
		key("setlayout", arg("gaplessgrid"), "Mod1-Shift-g"),
		key("cyclelayout", arg("-1"), "Mod1-Control-i"),
		key("cyclelayout", arg("+1"), "Mod1-Control-p"),
		key("view", arg("all"), "Mod1-0"),
		key("goback", nil, "Mod1-Tab"),
		key("shiftviewclients", arg("+1"), "Mod1-Shift-n"),
		key("shiftviewclients", arg("-1"), "Mod1-Shift-p"),
		key("winview", nil, "Mod1-Shift-a"),

		key("zoom", nil, "Mod1-semicolon"),
		key("transfer", nil, "Mod1-Shift-v"),
		key("pushdown", nil, "Mod4-j"),
		key("pushup", nil, "Mod4-k"),
		key("togglefloating", nil, "Mod1-space"),
		key("unfloatvisible", nil, "Mod1-Shift-space"),
		key("togglesticky", nil, "Mod4-s"),
		key("togglefullscr", nil, "Mod1-f"),
		key("togglefakefullscreen", nil, "Mod1-Control-f"),
		key("togglescratch", arg("0"), "Mod1-u"),
		key("togglescratch", arg("1"), "Mod1-i"),
		key("togglescratch", arg("2"), "Mod1-y"),

		key("focusmon", arg("-1"), "Mod1-comma"),
		key("focusmon", arg("+1"), "Mod1-period"),
		key("tagmon", arg("-1"), "Mod1-Shift-comma"),
		key("tagmon", arg("+1"), "Mod1-Shift-period"),

		key("moveresize", arg("0x 25y 0w 0h"), "Mod1-Control-j"),
		key("moveresize", arg("0x -25y 0w 0h"), "Mod1-Control-k"),
		key("moveresize", arg("25x 0y 0w 0h"), "Mod1-Control-l"),
		key("moveresize", arg("-25x 0y 0w 0h"), "Mod1-Control-h"),
		key("moveresize", arg("0x 0y 0w 25h"), "Mod4-Control-Shift-j"),
		key("moveresize", arg("0x 0y 0w -25h"), "Mod4-Control-Shift-k"),
		key("moveresize", arg("0x 0y 25w 0h"), "Mod4-Control-Shift-l"),
		key("moveresize", arg("0x 0y -25w 0h"), "Mod4-Control-Shift-h"),

		key("incrgaps", arg("+1"), "Mod1-Shift-equal"),
		key("incrgaps", arg("-1"), "Mod1-Shift-minus"),
		key("defaultgaps", nil, "Mod1-Shift-0"),
		key("togglegaps", nil, "Mod1-Control-0"),

		key("setborderpx", arg("+1"), "Mod1-Control-equal"),
		key("setborderpx", arg("-1"), "Mod1-Control-minus"),
		key("setborderpx", arg("0"), "Mod4-0"),

		key("quit", arg("0"), "Mod4-Shift-Escape"),
		key("quit", arg("1"), "Mod1-Control-Shift-q"),
	}
}

// tagKeys binds the digit keys 1..n to the tag commands.
func tagKeys(n int) []KeyBinding {
	var keys []KeyBinding
	for i := 1; i <= n; i++ {
		n := strconv.Itoa(i)
		keys = append(keys,
			key("comboview", arg(n), "Mod1-"+n),
			key("toggleview", arg(n), "Control-"+n),
			key("toggletag", arg(n), "Mod4-"+n),
			key("combotag", arg(n), "Mod1-Shift-"+n),
			key("tagwith", arg(n), "Mod1-Control-"+n),
			key("swaptags", arg(n), "Mod4-Shift-"+n),
			key("focusnextmon", arg(n), "Control-Mod4-l", n),
			key("focusprevmon", arg(n), "Control-Mod4-h", n),
			key("tagnextmon", arg(n), "Mod1-Mod4-l", n),
			key("tagprevmon", arg(n), "Mod1-Mod4-h", n),
		)
	}
	return keys
}

func defaultButtons() []ButtonBinding {
	return []ButtonBinding{
		{Click: ClickClientWin, Mods: "Mod1", Button: 1, Command: "movemouse"},
		{Click: ClickClientWin, Mods: "Mod1", Button: 2, Command: "togglefloating"},
		{Click: ClickClientWin, Mods: "Mod1", Button: 3, Command: "resizemouse"},
		{Click: ClickTagBar, Button: 1, Command: "view"},
		{Click: ClickTagBar, Button: 3, Command: "toggleview"},
		{Click: ClickTagBar, Mods: "Mod1", Button: 1, Command: "tag"},
		{Click: ClickTagBar, Mods: "Mod1", Button: 3, Command: "toggletag"},
	}
}
