package sample

import "github.com/teslashibe/go-jevois-sample/pkg/engine"

// Mapping is the video mapping the module is designed for.
var Mapping = engine.MustParseVideoMapping("YUYV 640 480 15.0 YUYV 640 480 15.0 JeVois SamplePythonModule")

// Info describes the module for the host's info and help output.
var Info = engine.Metadata{
	Name:         "SamplePythonModule",
	Description:  "Draws a circle and a test message onto the grabbed video frames.",
	Author:       "Laurent Itti",
	Email:        "itti@usc.edu",
	Address:      "University of Southern California, HNB-07A, 3641 Watt Way, Los Angeles, CA 90089-2520, USA",
	Copyright:    "Copyright (C) 2017 by Laurent Itti, iLab and the University of Southern California",
	MainURL:      "http://jevois.org",
	SupportURL:   "http://jevois.org/doc",
	OtherURL:     "http://iLab.usc.edu",
	License:      "GPL v3",
	Distribution: "Unrestricted",
	Restrictions: "None",
	Mapping:      Mapping,
}
