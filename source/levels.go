package source

import "github.com/bodul/xwplayer/puzzle"

// levels is the built-in catalog.
var levels = []puzzle.Descriptor{
	{
		Title:      "المستوى 1: البداية السهلة",
		Dimensions: 9,
		Words: []puzzle.Word{
			{Text: "مصر", Clue: "دولة الأهرامات", Row: 3, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "قمر", Clue: "جسم سماوي يضيء ليلاً", Row: 1, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "صقر", Clue: "طائر جارح حاد البصر", Row: 3, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "بحر", Clue: "مسطح مائي كبير ومالح", Row: 5, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "حب", Clue: "عكس كره", Row: 5, Col: 3, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "أسد", Clue: "ملك الغابة", Row: 1, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 2: عالم الحيوان",
		Dimensions: 10,
		Words: []puzzle.Word{
			{Text: "زرافة", Clue: "حيوان طويل الرقبة", Row: 2, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "فيل", Clue: "أضخم حيوان بري", Row: 2, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "نمر", Clue: "حيوان مفترس مخطط", Row: 4, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "ارنب", Clue: "حيوان يحب الجزر", Row: 1, Col: 3, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "حصان", Clue: "حيوان يستخدم للركوب والجر", Row: 6, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 3: عواصم عربية",
		Dimensions: 11,
		Words: []puzzle.Word{
			{Text: "الرياض", Clue: "عاصمة المملكة العربية السعودية", Row: 4, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "دبي", Clue: "مدينة إماراتية شهيرة (ليست العاصمة)", Row: 2, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "بغداد", Clue: "عاصمة العراق", Row: 6, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "تونس", Clue: "عاصمة تونس", Row: 1, Col: 6, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "عمان", Clue: "عاصمة الأردن", Row: 4, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "صنعاء", Clue: "عاصمة اليمن", Row: 8, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 4: ألغاز رياضية",
		Dimensions: 10,
		Words: []puzzle.Word{
			{Text: "تسعة", Clue: "3 × 3", Row: 3, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindMath},
			{Text: "عشرة", Clue: "5 + 5", Row: 1, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindMath},
			{Text: "صفر", Clue: "الرقم الذي إذا ضربته في أي رقم كانت النتيجة نفسه", Row: 5, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindMath},
			{Text: "مائة", Clue: "10 × 10", Row: 3, Col: 6, Direction: puzzle.Down, ClueType: puzzle.KindMath},
			{Text: "خمسة", Clue: "عدد أصابع اليد الواحدة", Row: 7, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindMath},
		},
	},
	{
		Title:      "المستوى 5: في المطبخ",
		Dimensions: 12,
		Words: []puzzle.Word{
			{Text: "سكين", Clue: "أداة للتقطيع", Row: 2, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "ملعقة", Clue: "نأكل بها الشوربة", Row: 1, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "طبق", Clue: "نضع فيه الطعام", Row: 4, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "فرن", Clue: "لخبز الكعك", Row: 2, Col: 8, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "ثلاجة", Clue: "لحفظ الطعام بارداً", Row: 6, Col: 4, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 6: جسم الإنسان",
		Dimensions: 10,
		Words: []puzzle.Word{
			{Text: "قلب", Clue: "يضخ الدم للجسم", Row: 4, Col: 4, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "عين", Clue: "نرى بها", Row: 2, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "انف", Clue: "نشتم به الروائح", Row: 5, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "اذن", Clue: "نسمع بها", Row: 4, Col: 7, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "يد", Clue: "بها خمسة أصابع", Row: 6, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "رجل", Clue: "نمشي عليها", Row: 8, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 7: ثقافة وفنون",
		Dimensions: 12,
		Words: []puzzle.Word{
			{Text: "كلثوم", Clue: "كوكب الشرق (الاسم الثاني)", Row: 3, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindCultural},
			{Text: "مسرح", Clue: "أبو الفنون", Row: 1, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindCultural},
			{Text: "لوحة", Clue: "ما يرسمه الفنان", Row: 5, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "شعر", Clue: "كلام موزون ومقفى", Row: 3, Col: 6, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "رواية", Clue: "قصة طويلة", Row: 7, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 8: الفضاء",
		Dimensions: 11,
		Words: []puzzle.Word{
			{Text: "شمس", Clue: "نجم مجموعتنا", Row: 2, Col: 4, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "مريخ", Clue: "الكوكب الأحمر", Row: 1, Col: 6, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "ارض", Clue: "الكوكب الذي نعيش عليه", Row: 4, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "زحل", Clue: "كوكب ذو حلقات", Row: 4, Col: 8, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "نجم", Clue: "يلمع في السماء ليلاً", Row: 6, Col: 5, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 9: الطبيعة",
		Dimensions: 10,
		Words: []puzzle.Word{
			{Text: "شجرة", Clue: "لها جذور وأغصان", Row: 2, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "جبل", Clue: "تضريس أرضي مرتفع جداً", Row: 1, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "نهر", Clue: "مجرى مائي عذب", Row: 4, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "زهرة", Clue: "نبات له رائحة جميلة", Row: 2, Col: 7, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "غابة", Clue: "مكان كثيف الأشجار", Row: 6, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 10: تكنولوجيا",
		Dimensions: 12,
		Words: []puzzle.Word{
			{Text: "انترنت", Clue: "شبكة المعلومات العالمية", Row: 4, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "روبوت", Clue: "إنسان آلي", Row: 2, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "شاشة", Clue: "تعرض الصورة", Row: 6, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "ماوس", Clue: "فأرة الكمبيوتر", Row: 4, Col: 8, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "برمجة", Clue: "كتابة الأكواد", Row: 8, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 11: الفواكه والخضروات",
		Dimensions: 11,
		Words: []puzzle.Word{
			{Text: "تفاح", Clue: "فاكهة حمراء أو خضراء", Row: 2, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "رمان", Clue: "فاكهة بداخلها حبوب حمراء", Row: 1, Col: 5, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "خيار", Clue: "خضار لونه أخضر", Row: 4, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "جزر", Clue: "يقوي النظر (كما يقال)", Row: 2, Col: 7, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "بطيخ", Clue: "فاكهة صيفية كبيرة", Row: 6, Col: 4, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
	{
		Title:      "المستوى 12: الألوان",
		Dimensions: 10,
		Words: []puzzle.Word{
			{Text: "احمر", Clue: "لون الدم", Row: 3, Col: 3, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "اسود", Clue: "لون الليل الحالك", Row: 1, Col: 4, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "ابيض", Clue: "لون السلام", Row: 5, Col: 1, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
			{Text: "ازرق", Clue: "لون السماء", Row: 3, Col: 6, Direction: puzzle.Down, ClueType: puzzle.KindStandard},
			{Text: "اصفر", Clue: "لون الليمون", Row: 7, Col: 2, Direction: puzzle.Across, ClueType: puzzle.KindStandard},
		},
	},
}
