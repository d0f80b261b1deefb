package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"esp-create-project/internal/config"
)

// cMainTemplate is the main source stub written for C projects.
const cMainTemplate = `#include <stdio.h>
#include "freertos/FreeRTOS.h"
#include "freertos/task.h"


void app_main(void)
{
    // TODO Insert code
}
`

// cppMainTemplate is the main source stub written for C++ projects.
// app_main needs extern "C" linkage so the IDF startup code can find it.
const cppMainTemplate = `#include <stdio.h>
#include "freertos/FreeRTOS.h"
#include "freertos/task.h"


extern "C" void app_main(void)
{
    // TODO Insert code
}
`

// cmakeLanguageLine is the zero-based line in the template's CMakeLists.txt
// files reserved for the language customization. The ESP-IDF template keeps
// this line free for exactly this purpose.
const cmakeLanguageLine = 4

// applyLanguage customizes the extracted template for the chosen language:
// it swaps in the right main source stub and patches the CMake files.
func applyLanguage(dir string, cfg config.ProjectConfig) error {
	mainC := filepath.Join(dir, "main", "main.c")

	if cfg.Language == config.LangC {
		if err := os.WriteFile(mainC, []byte(cMainTemplate), 0644); err != nil {
			return fmt.Errorf("cannot write %s: %w", mainC, err)
		}
		// A C project carries no CXX version setting.
		return setLine(filepath.Join(dir, "CMakeLists.txt"), cmakeLanguageLine, "")
	}

	// C++: replace main.c with main.cpp and point the component at it.
	if err := os.Remove(mainC); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove %s: %w", mainC, err)
	}
	mainCpp := filepath.Join(dir, "main", "main.cpp")
	if err := os.WriteFile(mainCpp, []byte(cppMainTemplate), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", mainCpp, err)
	}
	componentCMake := filepath.Join(dir, "main", "CMakeLists.txt")
	if err := setLine(componentCMake, cmakeLanguageLine, `set(COMPONENT_SRCS "main.cpp")`); err != nil {
		return err
	}
	return setLine(filepath.Join(dir, "CMakeLists.txt"), cmakeLanguageLine,
		fmt.Sprintf("set(CMAKE_CXX_VERSION %d)", cfg.Std))
}

// setLine replaces one line of a text file in place.
func setLine(path string, idx int, text string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	lines := strings.Split(string(raw), "\n")
	if idx >= len(lines) {
		return fmt.Errorf("cannot patch %s: expected at least %d lines, got %d", path, idx+1, len(lines))
	}
	lines[idx] = text
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
