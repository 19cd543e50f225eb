package content

import (
	"fmt"
	"math/rand/v2"
)

var Facts = []string{
	"Go was designed at Google in 2007 by Robert Griesemer, Rob Pike and Ken Thompson.",
	"The Go gopher mascot was drawn by Renée French.",
	"Go 1.0 shipped in March 2012 with a compatibility promise that still holds.",
	"Goroutines start with a stack of a few kilobytes that grows on demand.",
	"gofmt means Go code has one formatting style and no arguments about it.",
	"Generics arrived in Go 1.18, more than ten years after the language was started.",
	"Docker, Kubernetes and Terraform are all written in Go.",
	"A Go binary is statically linked by default, so it ships as a single file.",
	"The <code>defer</code> statement runs in last-in, first-out order.",
	"Go 1.22 gave every loop iteration its own copy of the loop variable.",
}

var Jokes = []string{
	"Why did the gopher refuse to fight?\n\nIt preferred to <b>select</b> its battles. 🐹",
	"How do Go developers handle stress?\n\n<code>if err != nil { return err }</code> 😌",
	"Why was the goroutine so calm?\n\nIt knew someone would eventually <b>receive</b> it.",
	"A Go developer walks into a bar.\n\nThe bartender asks what they want. They reply: <i>\"Whatever, just don't make me use generics.\"</i>",
	"Why don't Go programmers like exceptions?\n\nThey'd rather <b>return</b> to sender. 📬",
}

var EightBall = []string{
	"It is certain.",
	"Without a doubt.",
	"You may rely on it.",
	"Yes, definitely.",
	"Most likely.",
	"Outlook good.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Cannot predict now.",
	"Don't count on it.",
	"My reply is no.",
	"Outlook not so good.",
	"Very doubtful.",
}

// Pick returns a random element of list.
func Pick(list []string) string {
	return list[rand.IntN(len(list))]
}

func Fact() string {
	return "💡 <b>Go Fact</b>\n\n" + Pick(Facts)
}

func Joke() string {
	return "😂 <b>Go Joke</b>\n\n" + Pick(Jokes)
}

func Magic8() string {
	return "🔮 <b>Magic 8-Ball says:</b>\n\n<i>" + Pick(EightBall) + "</i>"
}

func CoinFlip() string {
	side := "🪙 Heads"
	if rand.IntN(2) == 1 {
		side = "🪙 Tails"
	}
	return fmt.Sprintf("<b>%s!</b>", side)
}

// Game is one of the animated dice the platform supports.
type Game struct {
	Emoji string
	Label string
	Ack   string
}

// Games are keyed by command name, which doubles as the callback token.
var Games = map[string]Game{
	"dice":       {Emoji: "🎲", Label: "Dice", Ack: "🎲 Rolling..."},
	"darts":      {Emoji: "🎯", Label: "Darts", Ack: "🎯 Throwing..."},
	"bowling":    {Emoji: "🎳", Label: "Bowling", Ack: "🎳 Bowling!"},
	"basketball": {Emoji: "🏀", Label: "Basketball", Ack: "🏀 Shooting!"},
	"football":   {Emoji: "⚽", Label: "Football", Ack: "⚽ Kicking!"},
	"slots":      {Emoji: "🎰", Label: "Slot Machine", Ack: "🎰 Spinning..."},
}

// GameMessage follows the animated dice.
func GameMessage(g Game) string {
	return fmt.Sprintf("🎉 <b>%s</b> Good luck!", g.Label)
}
