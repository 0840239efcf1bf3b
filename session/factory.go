package session

import "github.com/hupe1980/slotmesh/core"

// DefaultFactory creates one schema-less Stopped record per known workflow.
// Wiring layers normally supply a factory carrying the catalog schemas.
func DefaultFactory(userID string) *core.SessionState {
	records := make([]*core.WorkflowRecord, 0, len(core.Intents))
	for _, i := range core.Intents {
		records = append(records, core.NewWorkflowRecord(i.WorkflowKey()))
	}
	return core.NewSessionState(userID, records...)
}

// Reconcile adds records and schema fields present in fresh but missing from
// loaded, so states persisted by an older catalog keep working. Existing values
// are never touched. It returns loaded for chaining.
func Reconcile(loaded, fresh *core.SessionState) *core.SessionState {
	for _, fr := range fresh.Records {
		lr := loaded.Record(fr.Key)
		if lr == nil {
			loaded.Records = append(loaded.Records, fr.Clone())
			continue
		}
		if lr.Fields == nil {
			lr.Fields = core.Fields{}
		}
		for _, name := range fr.Schema {
			if _, ok := lr.Fields[name]; !ok {
				lr.Schema = append(lr.Schema, name)
				lr.Fields[name] = ""
			}
		}
	}
	return loaded
}
