package randomforest

// Option is a function that configures a Model
type Option func(*Model)

// WithWinnerTakeAll sets whether each tree votes for the top class of its
// leaf (true) or adds the normalized leaf distribution (false).
func WithWinnerTakeAll(winnerTakeAll bool) Option {
	return func(m *Model) {
		m.winnerTakeAll = winnerTakeAll
	}
}

// WithInputFeatures sets the columns used as input features. By default every
// column except the label is an input feature.
func WithInputFeatures(columns ...int) Option {
	return func(m *Model) {
		m.inputFeatures = append([]int(nil), columns...)
	}
}
