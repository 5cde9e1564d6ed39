package game

// SpellingWords is the default word list for spelling tasks, pitched at
// group 7 of Dutch primary school.
var SpellingWords = []string{
	"bibliotheek", "gymnasium", "chocolade", "politieagent", "ziekenhuis",
	"vakantie", "restaurant", "computer", "telefoon", "televisie",
	"olifant", "krokodil", "giraffe", "nijlpaard", "chimpansee",
	"muziekinstrument", "vioolspelen", "pianolessen", "gitaarakkoord",
	"wetenschapper", "laboratorium", "experiment", "microscoop",
	"geschiedenis", "aardrijkskunde", "natuurkunde", "scheikunde",
	"brandweerauto", "ambulance", "helikopter", "vliegtuig",
	"zwembad", "voetbalveld", "tennisbaan", "schaatsbaan",
	"ontbijt", "middageten", "avondmaaltijd", "tussendoortje",
	"vriendschap", "eerlijkheid", "behulpzaam", "verantwoordelijk",
	"belangrijk", "moeilijk", "makkelijk", "mogelijk", "onmogelijk",
	"gezellig", "vrolijk", "verdrietig", "boos", "blij",
	"pannenkoek", "appelmoes", "aardappel", "spaghetti", "macaroni",
	"dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag",
	"januari", "februari", "augustus", "september", "december",
	"schrijven", "tekenen", "rekenen", "lezen", "spelen",
	"Nederland", "België", "Duitsland", "Frankrijk", "Engeland",
	"hoofdstad", "provincie", "gemeente", "dorpje", "wereldstad",
}
