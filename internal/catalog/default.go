package catalog

import "time"

// Default returns the built-in three-level catalog.
func Default() *Catalog {
	cat, err := New(defaultLevels()...)
	if err != nil {
		panic("catalog: invalid built-in levels: " + err.Error())
	}
	return cat
}

func defaultLevels() []Level {
	return []Level{
		{
			ID:       1,
			Name:     "Beginner",
			Duration: 60 * time.Second,
			Sentences: []string{
				"Practice makes perfect when you type with patience and focus. Each keystroke helps you build rhythm, confidence, and precision, turning small efforts.",
				"Typing helps you improve accuracy and speed as your fingers learn to flow naturally across the keyboard. With each word you type, your focus sharpens and your timing.",
				"Stay calm, stay focused, and type your way to success. Every correct word you type is a step closer to mastering your typing skills and improving your mental.",
			},
		},
		{
			ID:       2,
			Name:     "Intermediate",
			Duration: 45 * time.Second,
			Sentences: []string{
				"React empowers developers to build fast, responsive, and modern web interfaces using reusable components. It simplifies user interface management, allowing developers to focus on creativity and logic instead of repetitive code.",
				"The journey to mastery is built through consistent practice and focus on details. Whether it's coding, typing, or learning a new skill, small daily efforts compound into something extraordinary over time.",
				"Typing fast while maintaining accuracy is a balance of rhythm and precision. As you type more, your mind adapts to recognize word patterns and your fingers start moving effortlessly across the keyboard.",
			},
		},
		{
			ID:       3,
			Name:     "Advanced",
			Duration: 30 * time.Second,
			Sentences: []string{
				"The art of fast and precise typing requires dedication, rhythm, and intense concentration. Each word you type becomes a reflection of your control, focus, and the hours you've spent honing your craft. It's not just about hitting the keys quickly. It's about syncing your mind and fingers in perfect harmony.",
				"JavaScript and React together make the modern web dynamic, interactive, and efficient. React's component-based design allows developers to craft reusable, scalable, and organized user interfaces, while JavaScript adds flexibility and power to bring those interfaces to life. Together, they form the backbone of modern frontend development.",
				"Consistency in effort transforms ordinary practice into extraordinary performance. Every small step forward, every minute of focus, and every moment of persistence adds up over time. Just like great coders and typists, you don't master your craft overnight - you evolve through patience, repetition, and the willingness to improve a little more each day.",
			},
		},
	}
}
