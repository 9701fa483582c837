package analysis

// GuideEntry describes an analysis type for user-facing prompts and
// rejection messages.
type GuideEntry struct {
	Name        string
	Description string
	Variables   string
	UseCase     string
}

// Guide maps each analysis type to its explanation.
var Guide = map[Type]GuideEntry{
	TypeCrosstab: {
		Name:        "Crosstab (Chi-Square)",
		Description: "Examines the association between two variables as a contingency table.",
		Variables:   "Exactly 2 variables, distinct row and column roles.",
		UseCase:     "Checking if choice of transport (Bus, Car, Train) depends on gender.",
	},
	TypeCorrelation: {
		Name:        "Pearson Correlation",
		Description: "Measures the linear strength and direction of the relationship between variables.",
		Variables:   "2 or more numeric variables.",
		UseCase:     "Checking the relationship between advertising spend and sales revenue.",
	},
	TypeRegression: {
		Name:        "Linear Regression",
		Description: "Predicts a dependent variable based on one or more predictor variables.",
		Variables:   "1 numeric outcome followed by 1 or more numeric predictors.",
		UseCase:     "Predicting house prices based on size, location, and age.",
	},
	TypeHypothesis: {
		Name:        "Hypothesis Testing",
		Description: "Runs the appropriate test (t-test, ANOVA, chi-square, Mann-Whitney) for the supplied variable mix.",
		Variables:   "At least 2 variables; the concrete test is resolved from their types.",
		UseCase:     "Comparing test scores between boys and girls.",
	},
	TypeHistogram: {
		Name:        "Histogram",
		Description: "Shows the distribution of numeric variables.",
		Variables:   "Numeric variables only.",
		UseCase:     "Inspecting the spread of ages in a sample.",
	},
	TypeScatter: {
		Name:        "Scatter Plot",
		Description: "Plots two numeric variables against each other.",
		Variables:   "Numeric variables only.",
		UseCase:     "Visualizing income against years of education.",
	},
	TypeBoxplot: {
		Name:        "Box Plot",
		Description: "Shows distribution summaries, optionally split by one grouping variable.",
		Variables:   "Numeric measured axis plus at most one categorical grouping variable.",
		UseCase:     "Comparing salary distributions across departments.",
	},
	TypeHeatmap: {
		Name:        "Correlation Heatmap",
		Description: "Renders a correlation matrix of numeric variables as a heatmap.",
		Variables:   "2 or more numeric variables.",
		UseCase:     "Spotting clusters of related survey items.",
	},
	TypeVisual: {
		Name:        "Chart",
		Description: "Generates a chart of the selected variables.",
		Variables:   "At least 2 variables; options.chart_type selects the chart.",
		UseCase:     "Producing a bar chart of sales per region.",
	},
	TypeDescriptive: {
		Name:        "Descriptive Statistics",
		Description: "Summarizes the main features of the dataset (mean, median, std dev).",
		Variables:   "Numeric variables; all numeric columns when none are given.",
		UseCase:     "Getting an overview of average age, income, and distribution.",
	},
	TypeFrequencies: {
		Name:        "Frequencies & Tabulation",
		Description: "Counts how often each value occurs in the selected variables.",
		Variables:   "Any columns.",
		UseCase:     "Finding the number of respondents per city.",
	},
	TypeSampleSize: {
		Name:        "Sample Size Calculation",
		Description: "Computes the required sample size for a study design.",
		Variables:   "None; driven by options (method, confidence_level, margin_of_error).",
		UseCase:     "Sizing a survey for a 95% confidence level and 5% margin of error.",
	},
}
