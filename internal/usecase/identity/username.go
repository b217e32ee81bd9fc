package usecase_identity

import "math/rand"

var adjectives = []string{
	"amber", "bold", "brave", "bright", "calm", "clever", "cosmic", "crimson",
	"curious", "daring", "dashing", "eager", "fancy", "fuzzy", "gentle", "golden",
	"happy", "hazel", "jolly", "lively", "lucky", "mellow", "misty", "noble",
	"quick", "quiet", "rapid", "shiny", "silent", "sleepy", "snappy", "sunny",
	"swift", "velvet", "wild", "witty",
}

var animals = []string{
	"badger", "beaver", "bison", "condor", "coyote", "crane", "dolphin", "falcon",
	"ferret", "gecko", "heron", "ibex", "jackal", "koala", "lemur", "lynx",
	"magpie", "marmot", "mole", "narwhal", "ocelot", "otter", "owl", "panda",
	"pelican", "puffin", "raccoon", "raven", "seal", "sparrow", "stoat", "tapir",
	"toucan", "walrus", "wombat", "yak",
}

// RandomUsername builds an adjective-animal display name, e.g. "witty-otter".
func RandomUsername() string {
	return adjectives[rand.Intn(len(adjectives))] + "-" + animals[rand.Intn(len(animals))]
}
