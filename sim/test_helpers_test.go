package sim

// Shared fixtures for the sim package tests. The canonical three-state
// layout mirrors the smallest interesting disease model: state 0 is the
// starting "well" state, state 1 is the tracked event, state 2 is terminal.

// testModel wraps a matrix in the canonical three-state layout.
func testModel(matrix TransitionMatrix) *Model {
	return &Model{Matrix: matrix, Terminal: 2, Event: 1, Initial: 0}
}

// certainDeathMatrix sends every state straight to the terminal state.
func certainDeathMatrix() TransitionMatrix {
	return TransitionMatrix{
		{0, 0, 1},
		{0, 0, 1},
		{0, 0, 1},
	}
}

// identityMatrix keeps every patient in its current state forever.
func identityMatrix() TransitionMatrix {
	return TransitionMatrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// progressionMatrix is a stochastic well -> event -> terminal chain with no
// way back, so every trajectory is monotone.
func progressionMatrix() TransitionMatrix {
	return TransitionMatrix{
		{0.7, 0.2, 0.1},
		{0, 0.6, 0.4},
		{0, 0, 1},
	}
}
