package mqtt

import "strings"

// Topics builds the bridge's topic names under a common prefix.
type Topics struct {
	Prefix string
}

// Requests matches every request topic, "<prefix>/request/+".
func (t Topics) Requests() string {
	return t.Prefix + "/request/+"
}

func (t Topics) Response(suffix string) string {
	return t.Prefix + "/response/" + suffix
}

func (t Topics) Error(suffix string) string {
	return t.Prefix + "/error/" + suffix
}

// Status carries the retained online/offline state of the bridge.
func (t Topics) Status() string {
	return t.Prefix + "/status"
}

// RequestSuffix returns the last level of a request topic.
func (t Topics) RequestSuffix(topic string) (string, bool) {
	suffix, ok := strings.CutPrefix(topic, t.Prefix+"/request/")
	if !ok || suffix == "" || strings.Contains(suffix, "/") {
		return "", false
	}
	return suffix, true
}
