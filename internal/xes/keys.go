package xes

// KeyStat summarizes one event attribute key across a log.
type KeyStat struct {
	Key         string `json:"key" yaml:"key"`
	Occurrences int    `json:"occurrences" yaml:"occurrences"`
	Type        string `json:"type" yaml:"type"`
}

// Keys returns the event attribute keys of l in first-seen order, with the
// number of attributes carrying the key and the last declared type.
func Keys(l *Log) []KeyStat {
	index := make(map[string]int)
	var stats []KeyStat
	for _, tr := range l.Traces {
		for _, ev := range tr.Events {
			for _, a := range ev.Attributes {
				i, ok := index[a.Key]
				if !ok {
					i = len(stats)
					index[a.Key] = i
					stats = append(stats, KeyStat{Key: a.Key})
				}
				stats[i].Occurrences++
				stats[i].Type = a.Type.Name
			}
		}
	}
	return stats
}

// HasEventKey reports whether any event of l has an attribute named key.
func HasEventKey(l *Log, key string) bool {
	for _, tr := range l.Traces {
		for _, ev := range tr.Events {
			for _, a := range ev.Attributes {
				if a.Key == key {
					return true
				}
			}
		}
	}
	return false
}
