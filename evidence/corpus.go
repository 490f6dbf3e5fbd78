// Package evidence maintains the label-snippet corpus and its embedding
// index, and serves similarity search for symptom attribution. The built
// index lives behind an atomic pointer so scheduled rebuilds swap it in with
// zero downtime for concurrent readers.
package evidence

// Snippet is one label extract in the corpus.
type Snippet struct {
	Drug    string
	Section string
	Text    string
}

// Static snippet corpus covering the tracked pill components and the
// medications they commonly interact with. Illustrative, not comprehensive.
var corpus = []Snippet{
	{Drug: "ethinyl estradiol", Section: "adverse_reactions",
		Text: "The most common adverse reactions reported by 5% or more of users include: nausea, breast tenderness, headache, and mood changes."},
	{Drug: "ethinyl estradiol", Section: "warnings",
		Text: "May cause increased risk of blood clots, stroke, and heart attack, especially in smokers over 35."},
	{Drug: "levonorgestrel", Section: "adverse_reactions",
		Text: "Common side effects include irregular bleeding or spotting, breast tenderness, abdominal pain, nausea, and headache."},
	{Drug: "levonorgestrel", Section: "warnings",
		Text: "May cause mood changes, depression, or anxiety. Contact healthcare provider if symptoms worsen."},
	{Drug: "norethindrone", Section: "adverse_reactions",
		Text: "Most frequently reported: irregular menstrual bleeding, spotting, amenorrhea, breast tenderness, acne, and mood changes."},
	{Drug: "norethindrone", Section: "warnings",
		Text: "May cause changes in menstrual patterns. Breakthrough bleeding and spotting are common in the first months."},
	{Drug: "rifampin", Section: "drug_interactions",
		Text: "Strong CYP3A4 inducer. Significantly reduces contraceptive effectiveness. Use backup contraception."},
	{Drug: "rifampin", Section: "adverse_reactions",
		Text: "May cause gastrointestinal upset, headache, dizziness, and fatigue."},
	{Drug: "topiramate", Section: "drug_interactions",
		Text: "May reduce contraceptive efficacy at doses of 200mg/day or more. Consider alternative or additional contraception."},
	{Drug: "topiramate", Section: "adverse_reactions",
		Text: "Common side effects include cognitive impairment, fatigue, dizziness, nausea, and mood changes."},
	{Drug: "st. john's wort", Section: "drug_interactions",
		Text: "Herbal supplement that induces CYP3A4. Reduces oral contraceptive levels. Avoid concurrent use."},
	{Drug: "st. john's wort", Section: "adverse_reactions",
		Text: "May cause photosensitivity, gastrointestinal symptoms, dizziness, confusion, and fatigue."},
	{Drug: "ibuprofen", Section: "adverse_reactions",
		Text: "Common side effects include stomach upset, nausea, heartburn, dizziness, and headache."},
	{Drug: "acetaminophen", Section: "adverse_reactions",
		Text: "Generally well tolerated. Rare side effects may include nausea, rash, and headache."},
}

// Corpus returns a copy of the snippet corpus.
func Corpus() []Snippet {
	return append([]Snippet(nil), corpus...)
}
