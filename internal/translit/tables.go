package translit

// DefaultLatinTable maps Latin scholarly transliteration tokens to Cyrillic.
//
// Conventions: æ may be written ä, ә stands for у, glottal stops carry an
// apostrophe (k', p', t', c') and secondary labialization is marked with ẜ.
var DefaultLatinTable = Table{
	"a": "а", "æ": "æ", "ä": "æ", "b": "б", "c": "ц", "č": "ч", "d": "д",
	"e": "е", "f": "ф", "g": "г", "ğ": "гъ", "h": "х", "i": "и",
	"j": "й", "k": "к", "ḱ": "къ", "l": "л", "m": "м", "n": "н",
	"o": "о", "p": "п", "ṕ": "пъ", "q": "хъ", "r": "р", "s": "с",
	"š": "ш", "t": "т", "ṭ": "тъ", "u": "у", "ū": "у", "v": "в",
	"w": "у", "x": "х", "y": "ы", "z": "з", "ž": "ж", "ә": "у",

	// glottal stops
	"k'": "къ", "p'": "пъ", "t'": "тъ", "c'": "цъ",

	// labialized velars
	"kẜ": "хъу", "gẜ": "гъу", "k'ẜ": "къу",

	"dz": "дз", "dzh": "дж",
}

// DefaultCyrillicTable maps Cyrillic tokens to Latin scholarly transliteration.
// It is authored independently of DefaultLatinTable and is not its inverse.
var DefaultCyrillicTable = Table{
	"а": "a", "æ": "æ", "б": "b", "в": "v", "г": "g", "гъ": "ğ",
	"д": "d", "дж": "dzh", "дз": "dz", "е": "e", "ё": "jo", "ж": "ž",
	"з": "z", "и": "i", "й": "j", "к": "k", "къ": "k'", "л": "l",
	"м": "m", "н": "n", "о": "o", "п": "p", "пъ": "p'", "р": "r",
	"с": "s", "т": "t", "тъ": "t'", "у": "u", "ф": "f", "х": "h",
	"хъ": "q", "ц": "c", "цъ": "c'", "ч": "č", "ш": "š", "щ": "šč", "ъ": "",
	"ы": "y", "ь": "", "э": "e", "ю": "ju", "я": "ja",

	// labialized velars
	"хъу": "kẜ", "гъу": "gẜ", "къу": "k'ẜ",
}

// DefaultLatinLexicon holds irregular Latin spellings that bypass token mapping.
var DefaultLatinLexicon = Lexicon{
	"tærqūs": {"тæрхъус"},
	"tærqos": {"тæрхъус"},
	"tärqūs": {"тæрхъус"},
	"tärqos": {"тæрхъус"},
}

// DefaultCyrillicLexicon holds irregular Cyrillic words with their accepted
// Latin spellings, canonical spelling first.
var DefaultCyrillicLexicon = Lexicon{
	"тæрхъус": {"tærqūs", "tærqos", "tärqūs", "tärqos"},
}
