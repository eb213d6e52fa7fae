package chat

import "gymlink/models"

// sameMessage matches by id, falling back to the timestamp for records
// written before ids were assigned.
func sameMessage(a, b models.Message) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.CreatedAt == b.CreatedAt
}

// TogglePin flips the pinned state of target, returning rewritten message and
// pinned lists. The pinned flag and pinned-list membership always move
// together: both rewrites are meant to be written back in a single update.
// Inputs are not mutated. nowPinned reports the state after the toggle.
func TogglePin(messages, pinned []models.Message, target models.Message) (msgs, pins []models.Message, nowPinned bool) {
	wasPinned := false
	for _, p := range pinned {
		if sameMessage(p, target) {
			wasPinned = true
			break
		}
	}
	nowPinned = !wasPinned

	msgs = make([]models.Message, len(messages))
	copy(msgs, messages)
	for i := range msgs {
		if sameMessage(msgs[i], target) {
			msgs[i].Pinned = nowPinned
		}
	}

	if wasPinned {
		pins = make([]models.Message, 0, len(pinned))
		for _, p := range pinned {
			if !sameMessage(p, target) {
				pins = append(pins, p)
			}
		}
	} else {
		pins = make([]models.Message, len(pinned), len(pinned)+1)
		copy(pins, pinned)
		pc := target
		pc.Pinned = true
		pins = append(pins, pc)
	}
	return msgs, pins, nowPinned
}

// RemovePinned drops any pinned-list entry mirroring the given message. Used
// when the underlying message is deleted.
func RemovePinned(pinned []models.Message, target models.Message) []models.Message {
	out := make([]models.Message, 0, len(pinned))
	for _, p := range pinned {
		if !sameMessage(p, target) {
			out = append(out, p)
		}
	}
	return out
}
