package domain

// RoutingProblem is the full set of stops and vehicles submitted for solving,
// together with the global horizon all activity must fall into.
type RoutingProblem struct {
	Stops    []Stop
	Vehicles []Vehicle
	Horizon  TimeWindow
}

// StopLabels returns the set of stop labels in the problem.
func (p *RoutingProblem) StopLabels() map[string]struct{} {
	labels := make(map[string]struct{}, len(p.Stops))
	for _, s := range p.Stops {
		labels[s.Label] = struct{}{}
	}
	return labels
}
