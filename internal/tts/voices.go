package tts

// DefaultVoices is the fixed pool of synthetic voices assigned to
// speakers. When a project has more speakers than voices the pool
// wraps around and voices are shared.
var DefaultVoices = []string{
	"21m00Tcm4TlvDq8ikWAM", // Rachel
	"AZnzlk1XvdvUeBnXmlld", // Domi
	"EXAVITQu4vr4xnSDxMaL", // Bella
	"ErXwobaYiN019PkySvjV", // Antoni
	"MF3mGyEYCl7XYWbV9V6O", // Elli
}

// VoiceForSpeaker returns the pool voice for the i-th speaker
// encountered (0-based), round-robining through the pool.
func VoiceForSpeaker(i int) string {
	if i < 0 {
		i = 0
	}
	return DefaultVoices[i%len(DefaultVoices)]
}
