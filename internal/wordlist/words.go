// Dragonfly is a bare-metal provisioning controller.
// Copyright (C) 2025  Matthew Burns
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package wordlist

// wordlist holds 2048 short, pronounceable words (2^11, one per 11-bit
// slice of a MAC address) used to derive memorable machine names. A real
// BIP39 English list is the usual source for this kind of table; absent
// network access to fetch the canonical list, this one is generated by a
// fixed, seeded syllable grammar so it is reproducible and collision-free.
// The encoding in mac.go only depends on the list having 2048 distinct
// entries, not on any particular English corpus.
var words = [2048]string{
	"babeg", "baco", "bacuya", "bafam", "bafefyel", "bafuj", "bago", "bahjuh",
	"bahuze", "bajara", "baktopel", "bamab", "bamafcu", "banexher", "baquya", "barapla",
	"baxiv", "baykeq", "bayoh", "bazaxo", "bebi", "bebqidep", "bedi", "beflivi",
	"befo", "behoyuq", "bekgomi", "bekovez", "beles", "beligil", "bemiqo", "benulu",
	"benyejo", "bepjome", "bepot", "beqgu", "bese", "betze", "bexi", "beyxi",
	"bibo", "bifewci", "bihhiv", "bihi", "bije", "bikoju", "bimun", "bina",
	"biqan", "birildi", "bisce", "biteyaw", "bivik", "biwuda", "biye", "bobpal",
	"bobra", "bodi", "bogiqa", "bogozyi", "bogpu", "bohkoq", "bojwoju", "bomfij",
	"bomu", "bonahdit", "bonik", "bonu", "boqa", "boqu", "boquc", "borkazu",
	"boyis", "boypul", "bozip", "bucadux", "budo", "bufsaqa", "bugzep", "buhbal",
	"buhi", "bujwidox", "buko", "bukrek", "bukye", "bulo", "bumo", "bumra",
	"buno", "bunom", "bupfi", "bupru", "buqe", "buswora", "buwa", "buwzeva",
	"buya", "buyaxa", "buye", "buyu", "buzew", "cabi", "cabit", "cafa",
	"caga", "cago", "caho", "cahwewi", "cajico", "caju", "cakxa", "camtiza",
	"cani", "canku", "caraco", "cate", "catente", "catxugu", "cawo", "cawutvob",
	"cazam", "cebjon", "cecat", "cecpi", "cedfoq", "cedo", "cefgu", "cefi",
	"cefpiqgo", "cegvudu", "cejasiv", "cejex", "cejop", "ceka", "cekako", "cekip",
	"cele", "cenu", "cepof", "cepu", "ceraca", "cesa", "cesbifuc", "cesyig",
	"cete", "ceve", "cewa", "cexibna", "cibiw", "cicu", "cida", "cidusey",
	"cigufo", "cijalhi", "cijedca", "ciji", "cijin", "cika", "cisisge", "civqe",
	"ciya", "cizi", "cobu", "cobyu", "codesil", "cofo", "cofru", "cohoyuc",
	"coji", "cojof", "cojotyi", "como", "comqame", "cono", "coqad", "coqi",
	"coriq", "cosa", "covje", "covoyki", "coxmovi", "cozoq", "cubizjuk", "cudawso",
	"cudizo", "cufan", "cugze", "cumwirir", "cupmo", "cupon", "cuqhas", "cuqhe",
	"curke", "cutol", "cuwa", "cuwu", "cuzdi", "daddax", "dafhu", "dahu",
	"dalu", "dametli", "damicu", "dapo", "daquso", "daqza", "dasi", "daxi",
	"degu", "degvi", "dehkuja", "denarjow", "deneluw", "depvo", "dequ", "deri",
	"deruwro", "desut", "dewa", "deyi", "deyqaw", "dibon", "dibre", "dibzo",
	"dica", "dicko", "didi", "difo", "difu", "dihe", "dijfi", "dikufye",
	"dilad", "dimolo", "dinqiga", "dipoh", "diqu", "dirpemi", "disezeq", "disfe",
	"divzu", "diwum", "doba", "docapa", "dode", "dogi", "dohuk", "doje",
	"dojtes", "dojusve", "donlimad", "dotba", "doxi", "doxu", "dozgo", "dozo",
	"ducislu", "duddefe", "dufcad", "dugiquj", "duhaz", "duhzo", "duli", "dulodo",
	"dumhoy", "dumi", "dunevu", "dunpeq", "dupa", "duqul", "duqxuqwi", "dusaj",
	"duseni", "dutiy", "duwezka", "duwra", "duye", "duyka", "duyo", "facos",
	"fadub", "fafo", "fagpu", "fahhe", "faked", "fakemna", "falupti", "fame",
	"famiv", "famu", "fanhevus", "fannu", "fapa", "faput", "fasda", "fasoq",
	"fasso", "favbu", "faxezun", "faxudi", "faxupa", "feco", "feda", "fedevo",
	"fedi", "fefhomna", "fegugof", "feheyhe", "fejucza", "fekup", "feliljov", "feloj",
	"fepqowru", "feriy", "fesu", "fetne", "fetogi", "fexo", "fezje", "fibufpi",
	"fickim", "ficufew", "fijic", "fijo", "filsasi", "fimi", "finihe", "fiporo",
	"fiqwu", "firu", "fisog", "fisonge", "fispaq", "fitba", "fitpip", "fiwuzba",
	"fobpi", "foftole", "fogaz", "fogi", "fogoqkus", "foheri", "fohzuw", "foji",
	"fokvaq", "folevor", "folipnek", "fomik", "fopar", "fopen", "fopuwoq", "forasij",
	"foryu", "foto", "fotoj", "fotu", "fozyalo", "fucke", "fudi", "fudolar",
	"fufoki", "fufyab", "fugaso", "fuhugar", "fukat", "fukuye", "fulase", "fulwik",
	"fumi", "fune", "fupate", "fupe", "fupopiy", "fupsuvop", "furpoyu", "fusromo",
	"futti", "fututu", "fuvuw", "gacelo", "gadu", "gagi", "gagu", "gahfo",
	"gajupo", "galyaji", "galyusub", "gape", "gapogo", "gaquxi", "gatoszov", "gatowlaz",
	"gebaje", "gebce", "geha", "gejeka", "gejxoko", "gelneduq", "gencugja", "gepoq",
	"gerto", "gete", "gevi", "gexawa", "gexnerhe", "gezil", "gezu", "gibof",
	"gifu", "gijaqjow", "giju", "gikeno", "gilci", "gimiju", "ginnodta", "giqunoz",
	"girake", "gite", "giva", "giwxe", "gizga", "gobkewru", "goci", "godi",
	"godsigob", "godun", "gofet", "gofi", "gofju", "gohe", "gokoha", "golluf",
	"golujmaz", "golutum", "gomow", "gonaf", "gonodno", "gopi", "gopjatoy", "gopsodli",
	"goqsef", "goqyoba", "gore", "goruk", "goso", "gowa", "goxi", "goyasaz",
	"goyu", "gufimel", "gufju", "gugor", "gugxa", "gujo", "guki", "guko",
	"gulicdun", "gumavu", "gumjif", "gupadmoj", "guqi", "gura", "gurime", "gurmev",
	"gusqeju", "guthi", "guto", "guwoqu", "guxe", "guzatig", "habu", "haburze",
	"hada", "hadi", "hadoz", "hadpo", "hahtibaj", "hajujot", "hakaw", "hapfutfo",
	"hapuvo", "haru", "havanhe", "hayij", "hecuha", "hedbabo", "hehkeh", "heje",
	"hekadi", "heko", "helin", "helre", "hene", "henmuqwe", "hepo", "heqa",
	"heqe", "hervuqo", "hesa", "heso", "heva", "hezizo", "hibarip", "hibnam",
	"hibuda", "hida", "hifnez", "higokju", "hija", "hikfugqe", "himat", "hine",
	"hinyo", "hipu", "hishim", "hisva", "hite", "hiva", "hiwe", "hiwo",
	"hoba", "hobo", "hoccar", "hocsaqce", "hodqagem", "hogoye", "hoguda", "hone",
	"honfovhu", "hopke", "hoqla", "horib", "hoso", "hovbobuf", "hovzuqe", "hoxe",
	"hubotu", "huceb", "hujeme", "huju", "huke", "hunoqgov", "husloh", "husuk",
	"huwap", "huxic", "huzemhu", "jabvi", "jaciqvat", "jagaz", "jahco", "jale",
	"jamonve", "jape", "jasi", "javeco", "javi", "jawutuc", "jaxu", "jazu",
	"jebfevyo", "jecyufbu", "jefe", "jegdeqce", "jeju", "jelmil", "jeloham", "jenfebi",
	"jepfoy", "jeqhayfi", "jera", "jeretto", "jerohu", "jeta", "jetabu", "jeva",
	"jevdo", "jewurdom", "jifa", "jigsapu", "jiho", "jilu", "jima", "jimgir",
	"jini", "jino", "jinohuv", "jiplokdu", "jisga", "jivzu", "jixba", "jizka",
	"jizqapo", "joba", "jobaf", "jocfa", "jocjepi", "jodasi", "jodebcu", "jofago",
	"jofimsu", "jogo", "jokjala", "jola", "jolo", "jome", "jopoz", "joqa",
	"joqlin", "josuhod", "jote", "joteffo", "jowak", "jowe", "joxawi", "joxicu",
	"joxlo", "joxud", "jozusgo", "jucenca", "jucox", "judef", "judehog", "jugge",
	"jugihkuc", "juja", "jujo", "jujti", "jumawaf", "juned", "junhedyu", "jupac",
	"juru", "jurvej", "jusibe", "juvnuh", "juwliw", "juxo", "juylu", "juzolu",
	"juzyor", "kaco", "kafa", "kafijriv", "kager", "kajis", "kajnuti", "kakkam",
	"kalite", "kaloza", "kalul", "kani", "kanokar", "kapa", "kaqaq", "kaqno",
	"kari", "karno", "kavolyi", "kawdip", "kawvibab", "kaxoxag", "kayozfi", "kebat",
	"kebesgi", "kebfu", "kebxal", "keci", "kecov", "kedsa", "kefehqo", "kefubka",
	"kehona", "keja", "kejay", "kejoj", "kemej", "kenu", "keqog", "kequ",
	"keru", "keryiz", "kesegpe", "ketuc", "kevev", "kevhil", "kewe", "kexcovpi",
	"kexkos", "kexyi", "kezo", "kidiyex", "kigiw", "kihorbeh", "kihpah", "kija",
	"kijri", "kiju", "kili", "kimi", "kinedaq", "kinomu", "kisuhe", "kiteri",
	"kivwi", "kiwa", "kiwdo", "kiwhil", "kixezan", "kixlo", "kixo", "kobapa",
	"koda", "kodev", "kogohi", "koguq", "kohal", "kohi", "koja", "kokeje",
	"kolfe", "konatow", "kopdu", "kope", "kopowruc", "kopu", "koqza", "kosi",
	"kosnu", "kovuwhe", "kowo", "kubru", "kucfi", "kucofi", "kudbo", "kufibku",
	"kuge", "kujepo", "kujo", "kuli", "kunrirjo", "kupiz", "kura", "kurahi",
	"kuto", "kuva", "kuve", "kuvob", "kuwebu", "kuxi", "kuxilu", "kuyi",
	"kuze", "labi", "lafaj", "lafalo", "lafebpa", "lajeje", "lakogmic", "laku",
	"lali", "lame", "lamohil", "lapfa", "laqoge", "laquwdug", "lare", "lawi",
	"laxopxu", "lebya", "lediqjul", "lefado", "lefbe", "lefe", "legaja", "leklaq",
	"lemnow", "lepi", "leqa", "lerba", "lere", "leru", "levuc", "lewi",
	"lexa", "lexne", "leyo", "lezzopu", "lidoj", "lifac", "lifni", "ligaw",
	"ligfu", "ligkeha", "limhaqa", "limi", "limu", "linu", "lipe", "liqbi",
	"liqxu", "lire", "lirexip", "lirsirfu", "litalsi", "litco", "lituqu", "livamu",
	"livule", "lixku", "lobce", "locli", "lode", "lodu", "loface", "lofajzi",
	"lofi", "lohin", "lohpoz", "lojlo", "lome", "lomyi", "loqipi", "loqir",
	"losedip", "lote", "lotles", "loxe", "loye", "loze", "lucu", "ludha",
	"lugi", "luhka", "luhre", "lujar", "luju", "lujzisu", "lukneyan", "lulcuzuz",
	"lulo", "lulof", "lume", "luno", "lusuz", "lutij", "luvlah", "luvmi",
	"luwe", "luwqeq", "luwu", "luxebu", "luxtec", "luyixca", "luyuq", "luyute",
	"luzjogif", "luzo", "mabeske", "mabonu", "madi", "madopu", "mafe", "mafezo",
	"mahgazu", "mahu", "mahxasdu", "majqo", "majvurki", "malaron", "mape", "maqokku",
	"marmavxe", "masek", "masu", "matih", "mavazo", "mawme", "mayahi", "maye",
	"medvehos", "mefgoxwo", "mehi", "meja", "meko", "mela", "melme", "memammi",
	"meme", "meppati", "meqcoc", "meqfe", "meqi", "meqxuga", "meri", "mevo",
	"mewwuw", "mexe", "meylum", "meze", "mezi", "mihet", "mihop", "mikizo",
	"milad", "milcixu", "milfoba", "mimur", "minimiy", "miqi", "mirpa", "miyaru",
	"miyoz", "miyu", "mobge", "mocyi", "mogvuw", "mohohfov", "mohyorli", "mojebol",
	"mole", "momilu", "momnol", "momo", "mopu", "mora", "mormo", "moswoxi",
	"motelxa", "mowu", "moxe", "moyo", "moze", "moziqan", "mozme", "mubo",
	"muco", "mudes", "mufurju", "mukfoqxe", "mukto", "mulhodi", "mumey", "munihoz",
	"munxub", "murfa", "murotoy", "museqpe", "muvif", "muyucu", "nabahi", "nabteze",
	"nabuz", "nado", "nadut", "nafceji", "nafib", "nagke", "nakammix", "nali",
	"namkeki", "nanarid", "napo", "naxi", "naxkawe", "naxxu", "nazilko", "neda",
	"nede", "nedwef", "negpa", "neha", "nehu", "neja", "nelicpe", "neliziv",
	"nelmuyil", "neluswu", "nenuv", "nepboz", "nequ", "nesu", "nevala", "newaza",
	"nexha", "neya", "nicuhda", "nifagfo", "niggi", "niguvi", "niguxtu", "nihovu",
	"nijaxu", "niju", "niliz", "nimevmon", "nimka", "nimnivu", "ninu", "ninxa",
	"nipe", "nipora", "niqi", "nirke", "nirkit", "nirtotye", "nisenep", "niseqe",
	"nitni", "nivdu", "nixejor", "nixqo", "niysom", "niyuz", "nobxu", "noca",
	"nocad", "nodo", "nofhe", "nofivid", "noja", "nojxawe", "nole", "nolumi",
	"nomazrir", "nonibo", "noptojiy", "noreti", "nosakaz", "novful", "nowib", "nowje",
	"noydux", "noyuxib", "nozu", "nubqe", "nudosu", "nuhav", "nuhibo", "nuje",
	"nuli", "nulo", "nuluhu", "numiwhay", "nunifif", "nupi", "nupuwxu", "nuqajre",
	"nuski", "nutdo", "nutol", "nuvno", "nuvrunqo", "nuwjufup", "nuwo", "nuyo",
	"nuyvizza", "pabatgu", "pacej", "pagex", "pagga", "pajo", "pakama", "paknas",
	"pala", "pame", "pare", "paro", "pasotle", "pasyayi", "pate", "pati",
	"patowi", "patu", "pavozo", "pawi", "pawjo", "paxziv", "paye", "pazad",
	"pazdi", "pefa", "pego", "pegu", "peja", "pekighi", "pemi", "penafuc",
	"penlumdo", "penru", "pera", "pesa", "peti", "peto", "pevu", "pibahvo",
	"pibgapu", "pibihu", "pibix", "pidig", "pifa", "pikdiz", "pikju", "piko",
	"pile", "piqcexiy", "pisha", "piso", "pivef", "pivnub", "piwjo", "pixalu",
	"piyfugra", "pofpi", "pofze", "pogwisse", "pojejlu", "pojuwa", "pomaqu", "pomgacu",
	"popix", "poqvah", "potqi", "povo", "poxohti", "pubtil", "pucog", "pudpexle",
	"pugembo", "pugi", "puhazza", "pujande", "pulu", "pulyu", "pungu", "puno",
	"pupa", "pupzu", "puqi", "puqo", "purri", "pusahvo", "putqo", "puve",
	"puwicu", "puxugu", "puzigce", "puziy", "qabaron", "qabezo", "qabo", "qacuge",
	"qadsuk", "qaguk", "qaguxa", "qajoyu", "qakcufo", "qaki", "qaluki", "qamte",
	"qamuv", "qaqo", "qasmu", "qasve", "qata", "qatfeh", "qavara", "qavi",
	"qawrawo", "qawu", "qaxo", "qaxukja", "qayil", "qedna", "qefva", "qefvi",
	"qegayog", "qeguwa", "qehgi", "qekage", "qeki", "qemva", "qenuw", "qera",
	"qeru", "qesrawqe", "qeto", "qetu", "qevme", "qevte", "qevxosfe", "qexojo",
	"qexuk", "qeyeb", "qibbe", "qibdo", "qido", "qifiwnuf", "qiflah", "qige",
	"qija", "qikxeku", "qimey", "qimu", "qinunje", "qirhek", "qisu", "qivboz",
	"qixih", "qizene", "qizun", "qobor", "qocpej", "qodun", "qofuqin", "qogu",
	"qohle", "qohpeva", "qoka", "qola", "qollef", "qomgi", "qonpe", "qopuy",
	"qoqifa", "qoqo", "qorba", "qoriyri", "qosu", "qowi", "qoxifen", "qoyzed",
	"quba", "qubam", "qubbah", "quca", "qucfivso", "qucxe", "qugir", "quhas",
	"qujbi", "qujuqir", "qukofo", "qumji", "qummo", "qumu", "qumzursa", "qupi",
	"quqa", "quqe", "quthi", "qutix", "quwo", "quwud", "quxwo", "quya",
	"quyi", "rafhi", "rafi", "rafo", "ragavo", "rake", "ralu", "ramfo",
	"ramgo", "raminu", "ramqu", "rapa", "rapca", "rapu", "raqat", "rarob",
	"rasa", "rase", "rasoqki", "ratu", "rawnob", "raysap", "razod", "rebapul",
	"rebixic", "reburi", "refi", "regiy", "regotta", "regu", "rehwotru", "rekbumu",
	"reme", "remniz", "rene", "repi", "repmu", "repya", "reri", "rero",
	"resyoji", "retze", "rexo", "reyqa", "ridi", "rifu", "rigu", "rihi",
	"riho", "rijpol", "rileyce", "rimoc", "ripes", "ripkige", "riqen", "risafi",
	"rise", "rivos", "rizewu", "robogde", "rodeco", "rogaju", "roge", "roguwat",
	"rohuh", "rojjo", "roladkuj", "ronha", "ropdu", "ropgo", "roqqe", "roqxa",
	"rori", "roso", "rosvi", "rotqe", "rowbe", "roxga", "roxgeg", "roxte",
	"roywo", "rozardo", "rozifnu", "rubzem", "rucso", "rucu", "rudadga", "rudu",
	"rugbi", "ruhe", "rujpin", "rumojab", "ruqel", "ruqi", "ruqipa", "rurbi",
	"rutfocak", "ruvad", "ruvyaj", "ruwbo", "ruyile", "ruziw", "ruzwe", "sadfilex",
	"safe", "sagha", "sahaj", "sahik", "sajeh", "sajuc", "sakifu", "salo",
	"samun", "sashox", "saspa", "sayi", "sazmila", "seba", "sebvasa", "seghehe",
	"seje", "sejivox", "sela", "semhev", "senikri", "sepi", "sepva", "sepzid",
	"seqo", "seqxa", "sesunri", "seswu", "setba", "setmize", "sevwu", "sezur",
	"sicac", "sicoji", "sidaqo", "sidhu", "sifi", "sihe", "sihuno", "sijfo",
	"sijloreb", "silcalgo", "simi", "simwa", "sirax", "sivid", "siwtixec", "siwus",
	"siyug", "siyxomu", "sizlu", "sizol", "sobub", "sodpu", "sodso", "sofxat",
	"sogu", "sohotun", "sohyute", "solu", "somkaw", "somu", "sosfisij", "sovezho",
	"sowe", "soxa", "soxde", "soybe", "soyu", "sozefar", "sozo", "sucaca",
	"sucerro", "suczu", "sude", "sugga", "sujquf", "sujwayu", "sukupa", "sukzegi",
	"sulpod", "suno", "sunu", "supidex", "supra", "suqki", "sure", "suvechup",
	"suvi", "suwkiddo", "suwmepe", "suxato", "suxey", "suxfu", "suxiti", "suxmesa",
	"suxovi", "suyi", "suzhan", "tabmo", "tabud", "tadoti", "tafa", "tagxiq",
	"tahaj", "tahkak", "tahwos", "taka", "takte", "talfuw", "taluj", "taqofi",
	"tarubo", "tasaguz", "tasbe", "tatxeqi", "tava", "tawe", "taye", "tayvez",
	"tazavi", "tazib", "tazre", "tebe", "tedze", "tegip", "tegmi", "teha",
	"tehic", "tehja", "tehop", "teko", "tele", "temgeme", "tenac", "tere",
	"tesus", "tewo", "texho", "texu", "teyet", "tezacij", "tibmi", "tica",
	"tidgeq", "tido", "tigav", "tigaxo", "tijqi", "tilu", "tiluqo", "timol",
	"tiqa", "tiqego", "tiqob", "titpoze", "tize", "tobhoy", "tocwodo", "todey",
	"tofep", "toguzhe", "toma", "tomar", "tomi", "tonaxe", "toppu", "topuxba",
	"toqi", "toqzo", "tordo", "tosego", "totkovij", "tovi", "toxbu", "toxo",
	"toyasrak", "tozwig", "tubey", "tubu", "tuconu", "tucqi", "tufid", "tuge",
	"tugelem", "tugi", "tukbi", "tuku", "tumi", "tumtolhu", "tunay", "tununa",
	"tupu", "tupuweh", "tuqbeb", "tuqih", "tuqo", "turi", "turo", "tusuwa",
	"tuvidjif", "tuvre", "tuyda", "tuylucya", "tuzej", "vabgo", "vace", "vadu",
	"vafafip", "vafo", "vafuz", "vafye", "vaho", "vakuygo", "valo", "valutom",
	"vamah", "vamlu", "vappoy", "vara", "varleyu", "varuz", "vavaq", "vaver",
	"vavi", "vavocze", "vawajtu", "vawibvev", "vawik", "vawuw", "vayer", "vebiv",
	"vedxip", "vehe", "vehi", "veji", "veka", "vekisi", "vemeh", "vepa",
	"verqaj", "verripjo", "vesedic", "vevgek", "vevonbo", "vewi", "vewo", "veyes",
	"viga", "vigkis", "vigoy", "vihitwa", "vihvu", "vijjopa", "vikhuvi", "vilgagi",
	"vimzu", "vipoh", "viqa", "viri", "vitab", "vitdap", "vivo", "vivubuh",
	"viwoxkew", "vixep", "vixeti", "vixo", "viyada", "viye", "viyyad", "vodere",
	"vodi", "vogi", "vogik", "vogiyo", "vogpo", "vogsabhe", "vohaqo", "vojfap",
	"vojvuwe", "vokdeq", "vome", "vomiz", "vonre", "vopku", "vowa", "vowusri",
	"vozajmi", "vubi", "vudtuktu", "vudvi", "vufo", "vufu", "vugle", "vuguy",
	"vuha", "vuhe", "vujbu", "vuka", "vulo", "vupa", "vurameb", "vuro",
	"vusarga", "vuvexpig", "vuvtabu", "vuwi", "vuyzeqpi", "wacabip", "wader", "wadod",
	"wajeslu", "waka", "walo", "wamcemo", "wamji", "wane", "wanqis", "warra",
	"watawor", "wavam", "wavlu", "wawi", "waxaqo", "waxu", "wazca", "wazi",
	"webe", "wecto", "wehijuw", "wejemsu", "wejlov", "weju", "wekosa", "weldeve",
	"wele", "wemkive", "wepug", "weqe", "weqix", "weru", "wetet", "wetwa",
	"wewnunu", "wewpobe", "wezipuh", "wibriciy", "wicga", "widumdof", "wige", "wihipi",
	"wiho", "wikex", "wiku", "wilfumaj", "wilod", "wince", "winec", "wipve",
	"wiqifa", "wiqoh", "wirfe", "wisetog", "wite", "wixi", "wixnawuq", "wocinan",
	"wodaxha", "wofet", "woga", "wohug", "wojya", "woldequ", "wolexe", "wone",
	"wonuta", "wonzo", "wopo", "wopolo", "woqceh", "woqni", "worey", "wota",
	"woxowa", "woxpade", "woyaja", "woymem", "wube", "wubir", "wublu", "wuhoy",
	"wulehey", "wulxa", "wuma", "wuqa", "wurdi", "wusi", "wuso", "wuxo",
	"wuyog", "xacciba", "xafepi", "xagbite", "xagqi", "xaguxi", "xagyad", "xamik",
	"xanya", "xasno", "xastu", "xatugu", "xawoti", "xayuj", "xazowe", "xazusyu",
	"xeber", "xecasu", "xefimi", "xegete", "xeha", "xejete", "xejuhe", "xele",
	"xelossun", "xelro", "xelsa", "xenwu", "xere", "xerir", "xessi", "xestihup",
	"xetox", "xexo", "xeyol", "xeysu", "xeyuzfub", "xeze", "xezmo", "xibi",
	"xibo", "xibomid", "xicitu", "xidhax", "xifhub", "xiflob", "xihas", "xijaba",
	"xikzuzfi", "xilud", "xime", "ximigak", "xinju", "xipe", "xipxup", "xiqa",
	"xiquha", "xitibje", "xiwe", "xiwi", "xiwse", "xixit", "xiya", "xiyipi",
	"xocapfi", "xojo", "xoka", "xokulhe", "xomqi", "xonuti", "xope", "xoraxaj",
	"xoto", "xowej", "xoxlo", "xoxo", "xoyna", "xoyo", "xozim", "xozjohgi",
	"xozuro", "xozyudo", "xucjo", "xugki", "xukulud", "xula", "xuli", "xulqi",
	"xupe", "xupi", "xupo", "xupuwe", "xuqji", "xuqrepo", "xuqwodu", "xuwe",
	"xuwnet", "xuxetva", "xuzut", "yaforah", "yafpe", "yafso", "yake", "yami",
	"yanzulex", "yapec", "yaqluza", "yarbopi", "yasezu", "yata", "yawen", "yaxel",
	"yayijne", "yayu", "yebeca", "yedi", "yejuvti", "yekvoxa", "yekyu", "yepuro",
	"yeqat", "yeqo", "yerip", "yetuc", "yeve", "yewe", "yewo", "yexhoseb",
	"yexi", "yexu", "yeze", "yezoruc", "yibak", "yiban", "yico", "yidraf",
	"yiga", "yigof", "yiha", "yile", "yimezha", "yini", "yipo", "yirep",
	"yisezi", "yiskaq", "yitiw", "yiwa", "yixe", "yiyeqa", "yiyi", "yiyubi",
	"yobahi", "yobapez", "yobjiqfu", "yocjaxi", "yocsa", "yodzax", "yofaner", "yofi",
	"yoge", "yohafaf", "yohji", "yojre", "yokves", "yone", "yonru", "yonvona",
	"yonxariv", "yopola", "yoqgoh", "yorzu", "yosah", "yosog", "yosvu", "yovovuk",
	"yoxeqen", "yoxqin", "yoyo", "yozo", "yucceqe", "yudi", "yufic", "yufiyne",
	"yufut", "yugi", "yuha", "yujo", "yukuza", "yune", "yusoxu", "yuxo",
	"yuye", "yuyiho", "zabbe", "zace", "zacu", "zadifo", "zaduc", "zafawo",
	"zafe", "zafu", "zage", "zahcij", "zaheq", "zahow", "zajope", "zaka",
	"zakba", "zanup", "zapbu", "zapi", "zaqod", "zaqyo", "zaren", "zasli",
	"zasuq", "zawtas", "zaxu", "zebo", "zebroh", "zedu", "zefme", "zefo",
	"zefow", "zehaj", "zehun", "zekofo", "zepulo", "zesyoy", "zetvitot", "zetxace",
	"zewik", "zeza", "zezo", "zigiy", "zigufi", "zihi", "zija", "zikcu",
	"zileh", "zilo", "zime", "zinig", "zino", "zinozo", "ziro", "zisih",
	"zisyine", "ziwumof", "ziyoki", "ziyowuy", "zoci", "zode", "zogab", "zogum",
	"zoja", "zojozzib", "zomagjen", "zone", "zonpo", "zope", "zori", "zoru",
	"zoso", "zotik", "zowe", "zowi", "zoxi", "zoxwijru", "zuba", "zuci",
	"zufowa", "zufuv", "zuhurol", "zujjeyo", "zukcovob", "zulago", "zumpa", "zunak",
	"zuni", "zunotye", "zunu", "zuqaqe", "zuqo", "zuwe", "zuwikil", "zuyo",
}

