package util

import (
	"fmt"

	"uno-server/internal/rng"
)

var random rng.Generator = rng.Default()

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Sneaky", "Lucky", "Wild", "Reversed", "Skipping", "Happy", "Funny",
	"Red", "Blue", "Green", "Yellow", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Growling", "Flying", "Jumping", "Running", "Bouncing", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Shark", "Hippo", "Giraffe", "Lion", "Tiger",
	"Bear", "Otter", "Dolphin", "Porcupine", "Hedgehog", "Lizard", "Chipmunk",
	"Okapi", "Eagle", "Wolf", "Fox", "Armadillo", "Panda",
}

// GetRandomName returns a random name by combining an adjective with an animal
// It's used to name games created without a name
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
