package scoring

import "github.com/okian/judgeboard/internal/domain/model"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithJudges sets the fixed judge panel. Empty input keeps the default panel;
// duplicate roles are collapsed, first occurrence wins.
func WithJudges(judges []model.JudgeRole) Option {
	return func(e *Engine) {
		if len(judges) == 0 {
			return
		}
		seen := make(map[model.JudgeRole]struct{}, len(judges))
		panel := make([]model.JudgeRole, 0, len(judges))
		for _, j := range judges {
			if _, dup := seen[j]; dup || j == "" {
				continue
			}
			seen[j] = struct{}{}
			panel = append(panel, j)
		}
		if len(panel) > 0 {
			e.judges = panel
		}
	}
}
