package compiler

// Intrinsic catalogues and the emission rewrite table, §3 and §6. These are
// immutable process-wide constants constructed once at initialisation, safe
// to share across concurrent Compiler instances (§9: "no mutation at run
// time"), the same discipline the teacher applies to its own keyword and
// operator tables in token.go.

// intrinsicVariables is the fixed set of SAAAM-reserved variable names.
var intrinsicVariables = map[string]bool{
	"position": true, "velocity": true, "size": true, "color": true,
	"rotation": true, "scale": true, "visible": true, "active": true,
	"tag": true, "components": true,
	"GRAVITY": true, "FRICTION": true, "MAX_FALL_SPEED": true,
	"delta_time": true, "current_time": true, "game_time": true,
}

// intrinsicFunctions is the fixed set of SAAAM-reserved function names,
// including the four lifecycle functions.
var intrinsicFunctions = map[string]bool{
	"create": true, "step": true, "draw": true, "on_collision": true,
	"keyboard_check": true, "keyboard_check_pressed": true, "keyboard_check_released": true,
	"mouse_check": true, "mouse_check_pressed": true, "mouse_check_released": true,
	"draw_sprite": true, "draw_text": true, "draw_rectangle": true, "draw_circle": true, "draw_line": true,
	"play_sound": true, "play_music": true, "stop_sound": true, "stop_music": true,
	"vec2": true, "vec3": true, "point_distance": true, "check_collision": true,
	"create_object": true, "destroy_object": true, "find_object": true, "find_nearest": true,
}

// virtualKeys is the fixed vk.* member set (§6 Virtual-key table).
var virtualKeys = map[string]bool{
	"left": true, "right": true, "up": true, "down": true,
	"space": true, "enter": true, "escape": true, "shift": true,
}

// isIntrinsicName reports whether name is a reserved SAAAM variable or
// function identifier, used by both the parser (to tag Identifier.IsIntrinsic)
// and the analyser (to suppress "used but not declared" warnings for them).
func isIntrinsicName(name string) bool {
	return intrinsicVariables[name] || intrinsicFunctions[name]
}

// rewriteTable is the partial mapping from intrinsic identifier to its
// host-namespaced emission form (§3, §6, §9 Open question). Only the names
// explicitly listed here are rewritten; every other intrinsic identifier is
// emitted verbatim by the Emitter.
var rewriteTable = map[string]string{
	"keyboard_check":          "H.keyboardCheck",
	"keyboard_check_pressed":  "H.keyboardCheckPressed",
	"keyboard_check_released": "H.keyboardCheckReleased",
	"mouse_check":             "H.mouseCheck",
	"mouse_check_pressed":     "H.mouseCheckPressed",
	"mouse_check_released":    "H.mouseCheckReleased",
	"draw_sprite":             "H.drawSprite",
	"draw_text":               "H.drawText",
	"draw_rectangle":          "H.drawRectangle",
	"draw_circle":             "H.drawCircle",
	"draw_line":               "H.drawLine",
	"play_sound":              "H.playSound",
	"play_music":              "H.playMusic",
	"stop_sound":              "H.stopSound",
	"stop_music":              "H.stopMusic",
	"check_collision":         "H.checkCollision",
	"point_distance":          "H.pointDistance",
	"delta_time":              "H.deltaTime",
	"current_time":            "H.currentTime",

	"vk_left": "H.vk.left", "vk_right": "H.vk.right",
	"vk_up": "H.vk.up", "vk_down": "H.vk.down",
	"vk_space": "H.vk.space", "vk_enter": "H.vk.enter",
	"vk_escape": "H.vk.escape", "vk_shift": "H.vk.shift",
}

// lifecycleFunctions is the fixed set of names for which the Emitter's
// epilogue (§4.5) generates a registration call, in the order they are
// checked — the epilogue itself always emits them in declaration order,
// never this order.
var lifecycleRegistration = map[string]string{
	"create":       "H.registerCreate(create)",
	"step":         "H.registerStep(step)",
	"draw":         "H.registerDraw(draw)",
	"on_collision": "H.registerCollision(on_collision)",
}

func init() {
	// vk_* identifiers are not themselves declared intrinsic variables or
	// functions (they're virtual-key constants, referenced as bare
	// identifiers), but every vk_* key in the rewrite table must resolve to
	// a virtualKeys member so the rewrite table and §6's vk table never
	// drift apart silently.
	for k := range rewriteTable {
		if len(k) > 3 && k[:3] == "vk_" {
			if !virtualKeys[k[3:]] {
				panic("intrinsics: rewrite table references unknown virtual key " + k)
			}
		}
	}
}
