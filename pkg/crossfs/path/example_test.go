package path_test

import (
	"fmt"

	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

func ExampleNormalize() {
	fmt.Println(path.Normalize("/usr/local/../bin/./"))
	fmt.Println(path.Normalize(`C:\Windows\..\Users`))
	fmt.Println(path.Normalize("a/../../b"))
	// Output:
	// /usr/bin
	// C:\Users
	// ../b
}

func ExampleTokenize() {
	path.Tokenize(`C:\Windows\/System32`, func(t path.Token) {
		fmt.Printf("%q\n", t.String())
	})
	// Output:
	// "C:\\"
	// "Windows\\"
	// "System32"
}

func ExampleBasename() {
	fmt.Println(path.Dirname("/home/user/notes.txt"))
	fmt.Println(path.Basename("/home/user/notes.txt", ".txt"))
	fmt.Println(path.Extname("archive.tar.gz"))
	// Output:
	// /home/user
	// notes
	// .gz
}
