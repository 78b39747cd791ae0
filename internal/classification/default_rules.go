package classification

import "github.com/sisifus/jobflow/internal/model"

// DefaultDefinitions returns the built-in status rule tables. Statuses
// and languages are additive data changes here, not code changes.
func DefaultDefinitions() []StatusDefinition {
	en := func(regex string) PatternRule {
		return PatternRule{Regex: regex, Lang: LangEnglish, Target: TargetBoth, Weight: 1.0}
	}
	pt := func(regex string) PatternRule {
		return PatternRule{Regex: regex, Lang: LangPortuguese, Target: TargetBoth, Weight: 1.0}
	}

	return []StatusDefinition{
		{
			Status: model.StatusApplied,
			Rules: []PatternRule{
				en(`application.*submitted`),
				en(`application.*received`),
				en(`thank.*for.*your.*application`),
				en(`we.*received.*your.*application`),
				en(`application.*sent`),
				en(`applied.*for`),
				en(`your.*application`),
				en(`alert.*application`),
				pt(`candidate-se`),
				pt(`candidate.*se`),
				pt(`aplicar`),
				pt(`novas.*vagas`),
				en(`job.*opportunity`),
				en(`.*opportunity`),
				pt(`vagas.*em`),
				en(`job.*alert`),
				en(`new.*position`),
				en(`open.*position`),
				en(`we.*are.*hiring`),
				en(`looking.*for.*`),
			},
		},
		{
			Status: model.StatusConfirmation,
			Rules: []PatternRule{
				en(`confirmation.*application`),
				en(`application.*confirm`),
				en(`we.*have.*received.*application`),
				en(`application.*successfully.*received`),
				en(`confirm.*receipt.*application`),
				en(`application.*status.*update`),
			},
		},
		{
			Status: model.StatusInterview1,
			Rules: []PatternRule{
				en(`first.*interview`),
				en(`initial.*interview`),
				en(`screening.*interview`),
				en(`phone.*screen`),
				en(`phone.*interview`),
				en(`video.*screen`),
				en(`video.*interview`),
				en(`preliminary.*interview`),
				en(`first.*round`),
				en(`round.*1.*interview`),
				en(`take.*home.*assessment`),
				en(`assessment`),
				pt(`primeira.*entrevista`),
			},
		},
		{
			Status: model.StatusInterview2,
			Rules: []PatternRule{
				en(`second.*interview`),
				en(`next.*round.*interview`),
				en(`second.*round`),
				en(`round.*2.*interview`),
				en(`technical.*interview`),
				en(`panel.*interview`),
				pt(`segunda.*entrevista`),
			},
		},
		{
			Status: model.StatusInterview3,
			Rules: []PatternRule{
				en(`third.*interview`),
				en(`final.*interview`),
				en(`round.*3.*interview`),
				en(`third.*round`),
				en(`onsite.*interview`),
				en(`on-site.*interview`),
				pt(`entrevista.*final`),
			},
		},
		{
			Status: model.StatusInterview4,
			Rules: []PatternRule{
				en(`fourth.*interview`),
				en(`round.*4.*interview`),
				en(`fourth.*round`),
			},
		},
		{
			Status: model.StatusInterview5,
			Rules: []PatternRule{
				en(`fifth.*interview`),
				en(`round.*5.*interview`),
				en(`fifth.*round`),
			},
		},
		{
			Status: model.StatusOffer,
			Rules: []PatternRule{
				en(`job.*offer`),
				en(`offer.*position`),
				en(`pleased.*to.*offer`),
				en(`delighted.*to.*offer`),
				en(`excited.*to.*offer`),
				en(`offer.*employment`),
				en(`offer.*you.*position`),
				en(`extend.*offer`),
				en(`making.*offer`),
				pt(`proposta.*de.*emprego`),
			},
		},
		{
			Status: model.StatusAccepted,
			Rules: []PatternRule{
				en(`accept.*offer`),
				en(`accepted.*position`),
				en(`excited.*to.*join`),
				en(`looking.*forward.*to.*join`),
				en(`accept.*job`),
				en(`acceptance.*offer`),
			},
		},
		{
			Status: model.StatusRejected,
			Rules: []PatternRule{
				// Company-perspective language: them rejecting you.
				en(`we.*regret.*inform`),
				en(`we.*regret.*to.*inform`),
				en(`unfortunately.*not.*selected`),
				en(`unfortunately.*decided.*not.*to.*proceed`),
				en(`we.*decided.*not.*to.*proceed`),
				en(`we.*decided.*not.*proceed`),
				en(`we.*will.*not.*be.*moving.*forward`),
				en(`we.*will.*not.*move.*forward`),
				en(`we.*not.*move.*forward`),
				en(`we.*decided.*pursue.*other`),
				en(`decided.*not.*move.*forward`),
				en(`other.*candidates`),
				en(`better.*fit.*another`),
				en(`not.*right.*fit`),
				en(`not.*fit.*at.*this.*time`),
				en(`we.*not.*advancing`),
				en(`not.*selected.*position`),
				en(`not.*selected.*candidate`),
				en(`not.*proceed.*with.*your.*application`),
				en(`not.*moving.*forward.*with.*application`),
				pt(`infelizmente.*n[aã]o`),
			},
		},
		{
			Status: model.StatusWithdrew,
			Rules: []PatternRule{
				// User-perspective language: you withdrawing or declining.
				en(`withdraw.*application`),
				en(`application.*withdrawn`),
				en(`no.*longer.*interested`),
				en(`decided.*to.*withdraw`),
				en(`withdrawing.*application`),
				en(`i.*withdraw`),
				en(`i.*no.*longer`),
				en(`declined.*interview`),
				en(`declined.*offer`),
				en(`decline.*opportunity`),
				en(`pass.*on.*opportunity`),
				en(`decided.*not.*pursue`),
			},
		},
	}
}
