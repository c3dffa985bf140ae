package engine

// ageBand is one row of an age table. To is 0 when the band has no upper bound.
type ageBand struct {
	text string
	from int
	to   int
}

// cycleAges holds the three life cycle tables, keyed by life path number - 1.
var cycleAges = [3][9]ageBand{
	{
		{"De la naissance à 27 ans", 0, 27},
		{"De la naissance à 26 ans", 0, 26},
		{"De la naissance à 25 ans", 0, 25},
		{"De la naissance à 24 ans", 0, 24},
		{"De la naissance à 32 ans", 0, 32},
		{"De la naissance à 31 ans", 0, 31},
		{"De la naissance à 30 ans", 0, 30},
		{"De la naissance à 29 ans", 0, 29},
		{"De la naissance à 28 ans", 0, 28},
	},
	{
		{"De 27 à 54 ans", 27, 54},
		{"De 26 à 53 ans", 26, 53},
		{"De 25 à 52 ans", 25, 52},
		{"De 24 à 60 ans", 24, 60},
		{"De 32 à 59 ans", 32, 59},
		{"De 31 à 58 ans", 31, 58},
		{"De 30 à 57 ans", 30, 57},
		{"De 29 à 56 ans", 29, 56},
		{"De 28 à 55 ans", 28, 55},
	},
	{
		{"A partir de 54 ans", 54, 0},
		{"A partir de 53 ans", 53, 0},
		{"A partir de 52 ans", 52, 0},
		{"A partir de 60 ans", 60, 0},
		{"A partir de 59 ans", 59, 0},
		{"A partir de 58 ans", 58, 0},
		{"A partir de 57 ans", 57, 0},
		{"A partir de 56 ans", 56, 0},
		{"A partir de 55 ans", 55, 0},
	},
}

// realizationAges holds the four realization tables, keyed by life path number - 1.
var realizationAges = [4][9]ageBand{
	{
		{"De 0 à 35 ans", 0, 35},
		{"De 0 à 34 ans", 0, 34},
		{"De 0 à 33 ans", 0, 33},
		{"De 0 à 32 ans", 0, 32},
		{"De 0 à 31 ans", 0, 31},
		{"De 0 à 30 ans", 0, 30},
		{"De 0 à 29 ans", 0, 29},
		{"De 0 à 28 ans", 0, 28},
		{"De 0 à 27 ans", 0, 27},
	},
	{
		{"De 35 à 44 ans", 35, 44},
		{"De 34 à 43 ans", 34, 43},
		{"De 33 à 42 ans", 33, 42},
		{"De 32 à 41 ans", 32, 41},
		{"De 31 à 40 ans", 31, 40},
		{"De 30 à 39 ans", 30, 39},
		{"De 29 à 38 ans", 29, 38},
		{"De 28 à 37 ans", 28, 37},
		{"De 27 à 36 ans", 27, 36},
	},
	{
		{"De 44 à 53 ans", 44, 53},
		{"De 43 à 52 ans", 43, 52},
		{"De 42 à 51 ans", 42, 51},
		{"De 41 à 50 ans", 41, 50},
		{"De 40 à 49 ans", 40, 49},
		{"De 39 à 48 ans", 39, 48},
		{"De 38 à 47 ans", 38, 47},
		{"De 37 à 46 ans", 37, 46},
		{"De 36 à 45 ans", 36, 45},
	},
	{
		{"53 ans et plus", 53, 0},
		{"52 ans et plus", 52, 0},
		{"51 ans et plus", 51, 0},
		{"50 ans et plus", 50, 0},
		{"49 ans et plus", 49, 0},
		{"48 ans et plus", 48, 0},
		{"47 ans et plus", 47, 0},
		{"46 ans et plus", 46, 0},
		{"45 ans et plus", 45, 0},
	},
}

// traitTexts groups the three narrative tables of one trait.
type traitTexts struct {
	tendencies [9]string
	advice     [9]string
	attention  [9]string
}

var healthTexts = traitTexts{
	tendencies: [9]string{
		"Énergie vitale forte, tendance aux maux de tête, problèmes cardiaques possibles",
		"Sensibilité du système nerveux, problèmes digestifs, fragilité émotionnelle",
		"Bonne vitalité générale, attention à la gorge et aux voies respiratoires",
		"Constitution robuste, tendance aux problèmes osseux et articulaires",
		"Système nerveux actif, attention aux addictions, problèmes de circulation",
		"Équilibre général, sensibilité au niveau du cœur et des reins",
		"Fragilité du système immunitaire, tendance aux troubles psychosomatiques",
		"Force physique, attention aux excès, problèmes de foie possibles",
		"Énergie fluctuante, sensibilité aux infections, besoin de repos régulier",
	},
	advice: [9]string{
		"Pratiquez la méditation, évitez le surmenage, exercice physique régulier",
		"Alimentation équilibrée, gestion du stress, environnement calme",
		"Expression créative, chant, évitez les environnements pollués",
		"Activité physique structurée, étirements, alimentation riche en calcium",
		"Variété dans l'alimentation, évitez les excitants, voyages bénéfiques",
		"Vie familiale harmonieuse, activités artistiques, soins esthétiques",
		"Moments de solitude, méditation, contact avec la nature",
		"Modération dans tout, gestion du stress professionnel, massages",
		"Activités humanitaires, évitez l'isolement, thérapies alternatives",
	},
	attention: [9]string{
		"Évitez l'autoritarisme excessif, surveillez la tension artérielle",
		"Attention aux troubles anxieux, évitez les conflits",
		"Ne négligez pas les signaux de fatigue, évitez la dispersion",
		"Attention à la rigidité mentale et physique, évitez la sédentarité",
		"Surveillez les excès, attention aux accidents, évitez l'instabilité",
		"Ne vous sacrifiez pas pour les autres, évitez la possessivité",
		"Attention à l'isolement excessif, évitez les pensées négatives",
		"Surveillez l'ambition démesurée, attention aux troubles digestifs",
		"Évitez l'épuisement émotionnel, attention aux allergies",
	},
}

var feelingsTexts = traitTexts{
	tendencies: [9]string{
		"Leadership émotionnel, indépendance affective, passion intense",
		"Sensibilité extrême, besoin d'harmonie, coopération naturelle",
		"Expression émotionnelle créative, optimisme, sociabilité",
		"Stabilité émotionnelle, loyauté, besoin de sécurité affective",
		"Liberté émotionnelle, curiosité sentimentale, adaptabilité",
		"Amour familial, responsabilité affective, dévouement",
		"Profondeur émotionnelle, introspection, spiritualité",
		"Ambition dans les relations, contrôle émotionnel, intensité",
		"Compassion universelle, idéalisme, générosité émotionnelle",
	},
	advice: [9]string{
		"Cultivez la patience, apprenez à écouter, tempérez votre ego",
		"Affirmez-vous davantage, fixez des limites, cultivez la confiance",
		"Canalisez votre énergie, évitez la superficialité, soyez authentique",
		"Ouvrez-vous au changement, exprimez vos émotions, soyez flexible",
		"Approfondissez vos relations, cultivez la constance, évitez la fuite",
		"Prenez soin de vous, évitez le sacrifice excessif, gardez votre indépendance",
		"Partagez vos émotions, évitez l'isolement, cultivez l'empathie",
		"Développez la tendresse, évitez la domination, cultivez l'humilité",
		"Ancrez-vous dans le réel, évitez l'idéalisation, protégez votre énergie",
	},
	attention: [9]string{
		"Attention à l'égocentrisme, évitez l'impatience en amour",
		"Évitez la dépendance affective, attention à la manipulation",
		"Attention à l'inconstance, évitez les relations superficielles",
		"Évitez la possessivité, attention à la jalousie excessive",
		"Attention à l'infidélité, évitez l'engagement par peur",
		"Évitez le contrôle excessif, attention au sacrifice de soi",
		"Attention à la froideur apparente, évitez l'isolement émotionnel",
		"Évitez la domination, attention aux relations intéressées",
		"Attention à l'épuisement émotionnel, évitez l'utopie relationnelle",
	},
}

var heredityTexts = traitTexts{
	tendencies: [9]string{
		"Héritage de leadership, force de caractère familiale, indépendance ancestrale",
		"Sensibilité héréditaire, coopération familiale, diplomatie ancestrale",
		"Créativité familiale, expression artistique héritée, joie de vivre",
		"Stabilité familiale, traditions solides, persévérance héréditaire",
		"Liberté ancestrale, aventure familiale, adaptabilité héritée",
		"Amour familial fort, responsabilité héréditaire, dévouement ancestral",
		"Sagesse familiale, spiritualité héritée, recherche de vérité",
		"Ambition familiale, réussite matérielle héritée, pouvoir ancestral",
		"Humanisme familial, générosité héritée, idéalisme ancestral",
	},
	advice: [9]string{
		"Honorez l'héritage familial tout en gardant votre individualité",
		"Cultivez l'harmonie familiale, médiez les conflits ancestraux",
		"Exprimez la créativité familiale, partagez la joie héritée",
		"Préservez les traditions tout en permettant l'évolution",
		"Équilibrez liberté personnelle et liens familiaux",
		"Servez la famille sans vous oublier, transmettez l'amour",
		"Partagez la sagesse familiale, cultivez la spiritualité",
		"Utilisez l'héritage matériel avec sagesse et générosité",
		"Canalisez l'idéalisme familial vers des actions concrètes",
	},
	attention: [9]string{
		"Évitez de reproduire l'autoritarisme familial, libérez-vous des schémas",
		"Attention à la dépendance familiale excessive, affirmez votre individualité",
		"Évitez la superficialité héritée, cultivez la profondeur",
		"Attention à la rigidité familiale, permettez l'innovation",
		"Évitez l'instabilité héritée, créez vos propres racines",
		"Attention au sacrifice familial excessif, préservez votre autonomie",
		"Évitez l'isolement familial, partagez votre sagesse",
		"Attention à l'avidité héritée, cultivez la générosité",
		"Évitez l'utopie familiale, ancrez-vous dans la réalité",
	},
}

// row maps a reduced number to a table index. Out-of-range keys fall back to row 1.
func row(n int) int {
	if n < 1 || n > 9 {
		return 0
	}
	return n - 1
}
